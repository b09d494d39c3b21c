package aws

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const metricNamespace = "ShopWCandy/Webhook"

// MetricsRecorder publishes webhook outcome counts to CloudWatch. Recording
// is best effort: a metrics failure is logged and never affects the request
// outcome.
type MetricsRecorder struct {
	CW CloudWatchAPI
}

// NewMetricsRecorder returns a recorder backed by cw. A nil cw yields a
// recorder whose Record is a no-op, which keeps local runs and tests quiet.
func NewMetricsRecorder(cw CloudWatchAPI) *MetricsRecorder {
	return &MetricsRecorder{CW: cw}
}

// Record counts one webhook delivery with the given outcome
// (e.g. "success", "invalid_signature", "verification_failed").
func (m *MetricsRecorder) Record(ctx context.Context, outcome string) {
	if m == nil || m.CW == nil {
		return
	}
	one := 1.0
	_, err := m.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: awsString(metricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("Deliveries"),
				Value:      &one,
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{
					{Name: awsString("Outcome"), Value: &outcome},
				},
			},
		},
	})
	if err != nil {
		log.Printf("[metrics] put metric data: %v", err)
	}
}
