package mediahost

import (
	"context"
	"net/url"
	"strings"

	"github.com/you/assetsvc/domain"
)

// DisabledHost stands in when no bucket is configured. Lookups fail, so
// classification falls back to extension-only rules.
type DisabledHost struct{}

func NewDisabledHost() *DisabledHost { return &DisabledHost{} }

func (DisabledHost) FetchResourceMetadata(context.Context, string) (*domain.ResourceMetadata, error) {
	return nil, domain.ErrMediaHostDisabled
}

func (DisabledHost) ResourceID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func (DisabledHost) SignUpload(context.Context, string) (*domain.UploadCredential, error) {
	return nil, domain.ErrMediaHostDisabled
}

var _ domain.MediaHost = DisabledHost{}
