package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/labstack/gommon/log"
)

func loadProdEnv(ctx context.Context, awsCfg AWSConfig) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsCfg.Region))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	n, err := ExportParameters(ctx, ssm.NewFromConfig(cfg), awsCfg.SSMPrefix)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d prod environment variables", n)
	return nil
}

// ExportParameters sets one environment variable per parameter stored
// under prefix. The variable name is the parameter name without the prefix.
func ExportParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string) (int, error) {
	pages := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	exported := 0
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return exported, fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return exported, fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			exported++
		}
	}
	return exported, nil
}
