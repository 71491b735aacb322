package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is a scriptable SecretsManagerAPI implementation.
type fakeClient struct {
	describeFunc func(ctx context.Context, params *secretsmanager.DescribeSecretInput) (*secretsmanager.DescribeSecretOutput, error)
	createFunc   func(ctx context.Context, params *secretsmanager.CreateSecretInput) (*secretsmanager.CreateSecretOutput, error)
	updateFunc   func(ctx context.Context, params *secretsmanager.UpdateSecretInput) (*secretsmanager.UpdateSecretOutput, error)
	getFunc      func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
	listFunc     func(ctx context.Context, params *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error)
	deleteFunc   func(ctx context.Context, params *secretsmanager.DeleteSecretInput) (*secretsmanager.DeleteSecretOutput, error)
}

func (f *fakeClient) DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error) {
	return f.describeFunc(ctx, params)
}

func (f *fakeClient) CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	return f.createFunc(ctx, params)
}

func (f *fakeClient) UpdateSecret(ctx context.Context, params *secretsmanager.UpdateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.UpdateSecretOutput, error) {
	return f.updateFunc(ctx, params)
}

func (f *fakeClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return f.getFunc(ctx, params)
}

func (f *fakeClient) ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error) {
	return f.listFunc(ctx, params)
}

func (f *fakeClient) DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error) {
	return f.deleteFunc(ctx, params)
}

func newStore(t *testing.T, client *fakeClient) *SecretsManager {
	t.Helper()
	s, err := NewSecretsManager(context.Background(), "us-east-1", "", WithClient(client))
	require.NoError(t, err)
	return s
}

func TestSecretsManagerDescribe(t *testing.T) {
	t.Run("existing secret", func(t *testing.T) {
		client := &fakeClient{
			describeFunc: func(ctx context.Context, params *secretsmanager.DescribeSecretInput) (*secretsmanager.DescribeSecretOutput, error) {
				assert.Equal(t, "worxco/production/db-password", aws.ToString(params.SecretId))
				return &secretsmanager.DescribeSecretOutput{
					ARN: aws.String("arn:aws:secretsmanager:us-east-1:123:secret:db-password"),
				}, nil
			},
		}

		meta, err := newStore(t, client).Describe(context.Background(), "worxco/production/db-password")
		require.NoError(t, err)
		assert.True(t, meta.Exists)
		assert.Contains(t, meta.ARN, "db-password")
	})

	t.Run("missing secret is not an error", func(t *testing.T) {
		client := &fakeClient{
			describeFunc: func(ctx context.Context, params *secretsmanager.DescribeSecretInput) (*secretsmanager.DescribeSecretOutput, error) {
				return nil, &types.ResourceNotFoundException{Message: aws.String("not found")}
			},
		}

		meta, err := newStore(t, client).Describe(context.Background(), "worxco/production/missing")
		require.NoError(t, err)
		assert.False(t, meta.Exists)
	})
}

func TestSecretsManagerCreate(t *testing.T) {
	client := &fakeClient{
		createFunc: func(ctx context.Context, params *secretsmanager.CreateSecretInput) (*secretsmanager.CreateSecretOutput, error) {
			assert.Equal(t, "worxco/production/api-token", aws.ToString(params.Name))
			assert.Equal(t, "Secret: api-token", aws.ToString(params.Description))
			assert.Equal(t, "tok-123", aws.ToString(params.SecretString))
			return &secretsmanager.CreateSecretOutput{
				ARN: aws.String("arn:aws:secretsmanager:us-east-1:123:secret:api-token"),
			}, nil
		},
	}

	arn, err := newStore(t, client).Create(context.Background(), "worxco/production/api-token", "Secret: api-token", "tok-123")
	require.NoError(t, err)
	assert.Contains(t, arn, "api-token")
}

func TestSecretsManagerUpdate(t *testing.T) {
	client := &fakeClient{
		updateFunc: func(ctx context.Context, params *secretsmanager.UpdateSecretInput) (*secretsmanager.UpdateSecretOutput, error) {
			assert.Equal(t, "new-value", aws.ToString(params.SecretString))
			return &secretsmanager.UpdateSecretOutput{
				ARN:       aws.String("arn:aws:secretsmanager:us-east-1:123:secret:api-token"),
				VersionId: aws.String("v2-def456"),
			}, nil
		},
	}

	arn, version, err := newStore(t, client).Update(context.Background(), "worxco/production/api-token", "new-value")
	require.NoError(t, err)
	assert.Contains(t, arn, "api-token")
	assert.Equal(t, "v2-def456", version)
}

func TestSecretsManagerGet(t *testing.T) {
	t.Run("string value", func(t *testing.T) {
		client := &fakeClient{
			getFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return &secretsmanager.GetSecretValueOutput{
					SecretString: aws.String("hunter2"),
				}, nil
			},
		}

		value, err := newStore(t, client).Get(context.Background(), "worxco/production/db-password")
		require.NoError(t, err)
		assert.Equal(t, "hunter2", value)
	})

	t.Run("binary value", func(t *testing.T) {
		client := &fakeClient{
			getFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return &secretsmanager.GetSecretValueOutput{
					SecretBinary: []byte("binary-payload"),
				}, nil
			},
		}

		value, err := newStore(t, client).Get(context.Background(), "worxco/production/blob")
		require.NoError(t, err)
		assert.Equal(t, "binary-payload", value)
	})

	t.Run("not found maps to NotFoundError", func(t *testing.T) {
		client := &fakeClient{
			getFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return nil, &types.ResourceNotFoundException{Message: aws.String("gone")}
			},
		}

		_, err := newStore(t, client).Get(context.Background(), "worxco/production/missing")
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "worxco/production/missing", notFound.Key)
	})
}

func TestSecretsManagerList(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("follows pagination in store order", func(t *testing.T) {
		pages := 0
		client := &fakeClient{
			listFunc: func(ctx context.Context, params *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error) {
				pages++
				if pages == 1 {
					return &secretsmanager.ListSecretsOutput{
						SecretList: []types.SecretListEntry{
							{Name: aws.String("a/x"), Description: aws.String("first"), LastChangedDate: &now},
							{Name: aws.String("b/x")},
						},
						NextToken: aws.String("page2"),
					}, nil
				}
				return &secretsmanager.ListSecretsOutput{
					SecretList: []types.SecretListEntry{
						{Name: aws.String("a/y"), LastChangedDate: &now},
					},
				}, nil
			},
		}

		entries, err := newStore(t, client).List(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "a/x", entries[0].Name)
		assert.Equal(t, "first", entries[0].Description)
		assert.Equal(t, now, entries[0].LastModified)
		assert.Equal(t, "b/x", entries[1].Name)
		assert.Empty(t, entries[1].Description)
		assert.Equal(t, "a/y", entries[2].Name)
	})

	t.Run("propagates list errors", func(t *testing.T) {
		client := &fakeClient{
			listFunc: func(ctx context.Context, params *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error) {
				return nil, errors.New("ThrottlingException: slow down")
			},
		}

		_, err := newStore(t, client).List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ThrottlingException")
	})
}

func TestSecretsManagerDelete(t *testing.T) {
	client := &fakeClient{
		deleteFunc: func(ctx context.Context, params *secretsmanager.DeleteSecretInput) (*secretsmanager.DeleteSecretOutput, error) {
			assert.Equal(t, int64(7), aws.ToInt64(params.RecoveryWindowInDays))
			return &secretsmanager.DeleteSecretOutput{
				ARN: aws.String("arn:aws:secretsmanager:us-east-1:123:secret:old-token"),
			}, nil
		},
	}

	arn, err := newStore(t, client).Delete(context.Background(), "worxco/production/old-token", 7)
	require.NoError(t, err)
	assert.Contains(t, arn, "old-token")
}

func TestSecretsManagerValidate(t *testing.T) {
	t.Run("reachable store", func(t *testing.T) {
		client := &fakeClient{
			listFunc: func(ctx context.Context, params *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error) {
				assert.Equal(t, int32(1), aws.ToInt32(params.MaxResults))
				return &secretsmanager.ListSecretsOutput{}, nil
			},
		}
		assert.NoError(t, newStore(t, client).Validate(context.Background()))
	})

	t.Run("auth failure", func(t *testing.T) {
		client := &fakeClient{
			listFunc: func(ctx context.Context, params *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error) {
				return nil, errors.New("AccessDenied")
			},
		}
		err := newStore(t, client).Validate(context.Background())
		var authErr AuthError
		assert.ErrorAs(t, err, &authErr)
	})
}
