package models

type LicenceParseRequest struct {
	RawData string `json:"raw_data"`
	// json (default) or yaml
	Format string `json:"format,omitempty"`
}

type LicenceIssuanceRequest struct {
	ScanId string `json:"scan_id"`
}
