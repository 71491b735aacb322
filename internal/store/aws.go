package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsManagerAPI is the subset of the AWS Secrets Manager client the
// store uses. Narrowing to an interface allows fake clients in tests.
type SecretsManagerAPI interface {
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	UpdateSecret(ctx context.Context, params *secretsmanager.UpdateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.UpdateSecretOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
}

// SecretsManager implements Store over AWS Secrets Manager.
type SecretsManager struct {
	client SecretsManagerAPI
	region string
}

// Option configures a SecretsManager store.
type Option func(*SecretsManager)

// WithClient sets a custom Secrets Manager client (for testing).
func WithClient(client SecretsManagerAPI) Option {
	return func(s *SecretsManager) {
		s.client = client
	}
}

// NewSecretsManager creates a store backed by AWS Secrets Manager in
// the given region. An empty profile uses the default credential chain.
func NewSecretsManager(ctx context.Context, region, profile string, opts ...Option) (*SecretsManager, error) {
	s := &SecretsManager{region: region}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		configOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(region),
		}
		if profile != "" {
			configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(profile))
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s.client = secretsmanager.NewFromConfig(cfg)
	}

	return s, nil
}

// Region returns the region the store client targets.
func (s *SecretsManager) Region() string {
	return s.region
}

// Describe probes for an existing secret.
func (s *SecretsManager) Describe(ctx context.Context, id string) (Metadata, error) {
	out, err := s.client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		if isNotFound(err) {
			return Metadata{Exists: false}, nil
		}
		return Metadata{}, s.handleError(err, id)
	}

	return Metadata{
		Exists: true,
		ARN:    aws.ToString(out.ARN),
	}, nil
}

// Create stores a new secret with a description.
func (s *SecretsManager) Create(ctx context.Context, id, description, value string) (string, error) {
	out, err := s.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(id),
		Description:  aws.String(description),
		SecretString: aws.String(value),
	})
	if err != nil {
		return "", s.handleError(err, id)
	}
	return aws.ToString(out.ARN), nil
}

// Update replaces the secret value, creating a new version.
func (s *SecretsManager) Update(ctx context.Context, id, value string) (string, string, error) {
	out, err := s.client.UpdateSecret(ctx, &secretsmanager.UpdateSecretInput{
		SecretId:     aws.String(id),
		SecretString: aws.String(value),
	})
	if err != nil {
		return "", "", s.handleError(err, id)
	}
	return aws.ToString(out.ARN), aws.ToString(out.VersionId), nil
}

// Get returns the current value of a secret.
func (s *SecretsManager) Get(ctx context.Context, id string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", s.handleError(err, id)
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if out.SecretBinary != nil {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("secret '%s' has no value", id)
}

// List returns every secret in the account, following pagination, in
// the order the store returned them.
func (s *SecretsManager) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry

	paginator := secretsmanager.NewListSecretsPaginator(s.client, &secretsmanager.ListSecretsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.handleError(err, "")
		}
		for _, item := range page.SecretList {
			entry := Entry{
				Name:        aws.ToString(item.Name),
				Description: aws.ToString(item.Description),
				ARN:         aws.ToString(item.ARN),
			}
			if item.LastChangedDate != nil {
				entry.LastModified = *item.LastChangedDate
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Delete schedules deletion with a recovery window.
func (s *SecretsManager) Delete(ctx context.Context, id string, recoveryWindowDays int64) (string, error) {
	out, err := s.client.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:             aws.String(id),
		RecoveryWindowInDays: aws.Int64(recoveryWindowDays),
	})
	if err != nil {
		return "", s.handleError(err, id)
	}
	return aws.ToString(out.ARN), nil
}

// Validate checks that credentials can reach the store by listing a
// single secret.
func (s *SecretsManager) Validate(ctx context.Context) error {
	_, err := s.client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return AuthError{
			Message: fmt.Sprintf("AWS authentication failed: %v", err),
		}
	}
	return nil
}

// handleError converts AWS errors to store errors. Everything else is
// wrapped so the underlying error text propagates unchanged.
func (s *SecretsManager) handleError(err error, id string) error {
	if isNotFound(err) {
		return &NotFoundError{Key: id}
	}
	if isAuthError(err) {
		return AuthError{
			Message: fmt.Sprintf("AWS authentication/authorization failed: %v", err),
		}
	}
	return fmt.Errorf("AWS Secrets Manager error: %w", err)
}

func isNotFound(err error) bool {
	var notFound *types.ResourceNotFoundException
	return errors.As(err, &notFound)
}

func isAuthError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "AccessDenied") ||
		strings.Contains(errStr, "UnauthorizedOperation") ||
		strings.Contains(errStr, "InvalidUserID") ||
		strings.Contains(errStr, "Forbidden")
}
