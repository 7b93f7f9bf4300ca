package types

// ModulePubkeys identifies the federation's well-known service roles.
type ModulePubkeys struct {
	Card   string `json:"card"`
	Ledger string `json:"ledger"`
	Urlx   string `json:"urlx"`
}

// Endpoints are the federation's HTTP surfaces.
type Endpoints struct {
	LightningDomain string `json:"lightningDomain"`
	Gateway         string `json:"gateway"`
}

// FederationConfig is the static description of one federation. It is
// passed explicitly to every entry point; there is no process-wide
// default.
type FederationConfig struct {
	ID        string        `json:"federationId"`
	Endpoints Endpoints     `json:"endpoints"`
	Modules   ModulePubkeys `json:"modulePubkeys"`
	Relays    []string      `json:"relaysList"`
}
