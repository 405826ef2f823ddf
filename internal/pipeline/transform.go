package pipeline

import (
	"context"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
)

// SurveyTransformer implements Transformer using the domain parse rules.
type SurveyTransformer struct{}

// NewTransformer creates a SurveyTransformer.
func NewTransformer() *SurveyTransformer {
	return &SurveyTransformer{}
}

// Transform parses raw into a Record. Sentinel rows fail with domain.ErrSentinelRow.
func (t *SurveyTransformer) Transform(_ context.Context, raw domain.RawRecord) (domain.Record, error) {
	return domain.ParseRecord(raw)
}
