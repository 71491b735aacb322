// Package preflight verifies the environment before any store
// interaction: required external tools on PATH and AWS credentials
// that resolve to a valid identity. Under dry-run both checks are
// skipped so command sequences can be rehearsed offline.
package preflight

import (
	"context"
	"fmt"
	"os/exec"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	dserrors "github.com/worxco/secretops/internal/errors"
)

// STSAPI is the subset of the AWS STS client used for the credential
// check.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Identity is the resolved caller identity.
type Identity struct {
	Account string
	ARN     string
	UserID  string
}

// CheckTools verifies every named tool is reachable on PATH and
// returns a PreflightError enumerating the missing ones.
func CheckTools(tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return dserrors.PreflightError{Missing: missing}
	}
	return nil
}

// CheckCredentials resolves the caller identity via STS. A nil client
// builds one from the default credential chain for the given region
// and profile.
func CheckCredentials(ctx context.Context, client STSAPI, region, profile string) (Identity, error) {
	if client == nil {
		configOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(region),
		}
		if profile != "" {
			configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(profile))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
		if err != nil {
			return Identity{}, dserrors.PreflightError{Message: "failed to load AWS config", Err: err}
		}
		client = sts.NewFromConfig(cfg)
	}

	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, dserrors.PreflightError{
			Message: "AWS credentials did not resolve to a valid identity",
			Err:     err,
		}
	}

	id := Identity{}
	if out.Account != nil {
		id.Account = *out.Account
	}
	if out.Arn != nil {
		id.ARN = *out.Arn
	}
	if out.UserId != nil {
		id.UserID = *out.UserId
	}
	if id.Account == "" {
		return Identity{}, dserrors.PreflightError{
			Message: fmt.Sprintf("caller identity missing account (arn: %s)", id.ARN),
		}
	}

	return id, nil
}
