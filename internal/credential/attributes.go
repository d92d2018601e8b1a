// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package credential

import (
	"fmt"

	"github.com/cons3rt/cons3rt.core/internal/errors"
	"github.com/cons3rt/cons3rt.core/internal/values"
)

// CredentialAttributes contain the attributes used for authenticating to
// the CONS3RT API. Credential values arrive already resolved; templating is
// the host driver's concern.
type CredentialAttributes struct {
	CertFilePath string
	CertPassword string
	Token        string
}

// GetCredentialAttributes checks the attributes required to authenticate to
// the CONS3RT API and enumerate deployment run hosts.
func GetCredentialAttributes(in map[string]any) (*CredentialAttributes, error) {
	badFields := make(map[string]string)

	certFilePath, err := values.GetStringValue(in, ConstCertFilePath, true)
	if err != nil {
		badFields[fmt.Sprintf("attributes.%s", ConstCertFilePath)] = err.Error()
	}

	certPassword, err := values.GetStringValue(in, ConstCertPassword, true)
	if err != nil {
		badFields[fmt.Sprintf("attributes.%s", ConstCertPassword)] = err.Error()
	}

	token, err := values.GetStringValue(in, ConstToken, true)
	if err != nil {
		badFields[fmt.Sprintf("attributes.%s", ConstToken)] = err.Error()
	}

	if len(badFields) > 0 {
		return nil, errors.InvalidArgumentError("Error in the attributes provided", badFields)
	}

	return &CredentialAttributes{
		CertFilePath: certFilePath,
		CertPassword: certPassword,
		Token:        token,
	}, nil
}
