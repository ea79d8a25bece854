package yousign

// SignatureRequest is the provider-side aggregate for one signing workflow.
// Optional nested fields stay zero-valued when the provider omits them.
type SignatureRequest struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Status  string   `json:"status,omitempty"`
	Signers []Signer `json:"signers,omitempty"`
}

// Signer carries identity plus the hosted signing link once the provider
// has computed it. An empty SignatureLink means "not yet available".
type Signer struct {
	ID            string `json:"id"`
	Status        string `json:"status,omitempty"`
	SignatureLink string `json:"signature_link,omitempty"`
}

type Document struct {
	ID     string `json:"id"`
	Nature string `json:"nature,omitempty"`
}

type SignerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Locale    string `json:"locale"`
}

// FirstSignerLink returns the first signer's signing link, or "" when no
// signer exists or the link has not been computed yet. Only signers[0] is
// ever consulted; multi-signer requests are out of scope.
func (r *SignatureRequest) FirstSignerLink() string {
	if r == nil || len(r.Signers) == 0 {
		return ""
	}
	return r.Signers[0].SignatureLink
}
