package models

import "aamva-parser/document/aamva"

type LicenceParseResponse struct {
	ScanId        string       `json:"scan_id" yaml:"scan_id"`
	Record        aamva.Record `json:"record" yaml:"record"`
	InvalidFields []string     `json:"invalid_fields" yaml:"invalid_fields"`
}

type LicenceIssuanceResponse struct {
	Jwt    string `json:"jwt"`
	Issuer string `json:"issuer"`
}
