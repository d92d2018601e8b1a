// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package credential

const (
	// ConstCertFilePath defines the attribute name for the path to the P12
	// certificate bundle used for client authentication.
	ConstCertFilePath = "cert_file_path"

	// ConstCertPassword defines the attribute name for the certificate
	// bundle passphrase.
	ConstCertPassword = "cert_password"

	// ConstToken defines the attribute name for the CONS3RT API project
	// token for the user.
	ConstToken = "cons3rt_token"
)
