package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	defaultNamespace         = "MusicTheory/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// PutMetricDataAPI is the part of the CloudWatch client the metrics client uses
type PutMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      PutMetricDataAPI
	enabled     bool
	environment string
	namespace   string
	async       bool
}

// NewClient creates a new CloudWatch metrics client.
// It is a no-op unless running in production with metrics enabled.
func NewClient(ctx context.Context, environment, namespace string, enabled bool) (*Client, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}

	if environment != "production" || !enabled {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
			namespace:   namespace,
		}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment, namespace: namespace}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
		namespace:   namespace,
		async:       true,
	}, nil
}

// NewClientWithAPI builds an enabled client around an existing CloudWatch API.
// Metrics are sent synchronously.
func NewClientWithAPI(api PutMetricDataAPI, environment, namespace string) *Client {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &Client{
		client:      api,
		enabled:     api != nil,
		environment: environment,
		namespace:   namespace,
	}
}

// Enabled reports whether metrics are being sent
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	m.run(func(ctx context.Context) {
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := []types.Dimension{
			{
				Name:  aws.String("Endpoint"),
				Value: aws.String(endpoint),
			},
			{
				Name:  aws.String("Environment"),
				Value: aws.String(m.environment),
			},
		}

		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	})
}

// RecordNoteMathEvaluation records one evaluator call and how many tokens it skipped
func (m *Client) RecordNoteMathEvaluation(skippedTokens int, strict bool) {
	if !m.Enabled() {
		return
	}

	m.run(func(ctx context.Context) {
		dimensions := []types.Dimension{
			{
				Name:  aws.String("Strict"),
				Value: aws.String(boolToString(strict)),
			},
			{
				Name:  aws.String("Environment"),
				Value: aws.String(m.environment),
			},
		}

		if err := m.putMetric(ctx, "NoteMathEvaluations", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record NoteMathEvaluations metric: %v", err)
		}

		if skippedTokens > 0 {
			if err := m.putMetric(ctx, "NoteMathSkippedTokens", float64(skippedTokens), types.StandardUnitCount, dimensions); err != nil {
				log.Printf("Failed to record NoteMathSkippedTokens metric: %v", err)
			}
		}
	})
}

func (m *Client) run(fn func(ctx context.Context)) {
	if m.async {
		go fn(context.Background())
		return
	}
	fn(context.Background())
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
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

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
