package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "NarrativeSetEngine/Pipeline"
	cloudwatchTimeoutSeconds = 5
)

// Client wraps the CloudWatch client for pipeline metrics: per-phase
// duration, LLM soft-failure counts, and run outcomes (complete, stopped,
// conflict, insufficient pool).
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// RecordPhaseDuration records how long one orchestrator phase took
// (spec.md §6's pool_analysis/narrative_arc/track_assignment/
// track_ordering/assembly phases).
func (m *Client) RecordPhaseDuration(phase string, duration time.Duration) {
	if m == nil || !m.enabled {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := []types.Dimension{
			{Name: aws.String("Phase"), Value: aws.String(phase)},
			{Name: aws.String("Environment"), Value: aws.String(m.environment)},
		}

		durationMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "PhaseDuration", durationMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record PhaseDuration metric: %v", err)
		}
	}()
}

// RecordRunOutcome records how a pipeline run ended: "complete", "stopped",
// "conflict", "insufficient_pool", or "error" (spec.md §7's error taxonomy).
func (m *Client) RecordRunOutcome(phaseProfileID, outcome string) {
	if m == nil || !m.enabled {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := []types.Dimension{
			{Name: aws.String("PhaseProfile"), Value: aws.String(phaseProfileID)},
			{Name: aws.String("Outcome"), Value: aws.String(outcome)},
			{Name: aws.String("Environment"), Value: aws.String(m.environment)},
		}

		if err := m.putMetric(ctx, "RunOutcomes", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record RunOutcomes metric: %v", err)
		}
	}()
}

// RecordPoolSize records the number of valid tracks a run's pool contained,
// so the insufficient-pool floor (spec.md §6: fewer than 10) can be watched
// against real traffic.
func (m *Client) RecordPoolSize(size int) {
	if m == nil || !m.enabled {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := []types.Dimension{
			{Name: aws.String("Environment"), Value: aws.String(m.environment)},
		}

		if err := m.putMetric(ctx, "PoolSize", float64(size), types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record PoolSize metric: %v", err)
		}
	}()
}

// RecordLLMSoftFailure records a recoverable LLM step failure (borderline
// review or sequence review, spec.md §7's LLMSoftFailure row) that the
// orchestrator logged and continued past.
func (m *Client) RecordLLMSoftFailure(step string) {
	if m == nil || !m.enabled {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := []types.Dimension{
			{Name: aws.String("Step"), Value: aws.String(step)},
			{Name: aws.String("Environment"), Value: aws.String(m.environment)},
		}

		if err := m.putMetric(ctx, "LLMSoftFailures", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record LLMSoftFailures metric: %v", err)
		}
	}()
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	_ context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
