package catalogcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const indexMessageType = "relnotes.catalog.index"

// IndexCommand rebuilds the search index for one documentation version. The
// command fails when any page could not be indexed, so scheduled rebuilds
// surface broken documents.
type IndexCommand struct {
	// Version names the documentation version, with or without a leading "v".
	Version string `json:"version"`
	// ContentDir overrides the configured content directory.
	ContentDir string `json:"content_dir,omitempty"`
	// BaseIndex overrides the configured index name prefix.
	BaseIndex string `json:"base_index,omitempty"`
}

// Type implements command.Message.
func (IndexCommand) Type() string { return indexMessageType }

// Validate ensures a version is present before handlers execute.
func (cmd IndexCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Version, validation.Required, validation.By(func(value any) error {
			s, _ := value.(string)
			if strings.TrimSpace(s) == "" {
				return validation.NewError("relnotes.catalog.index.version_required", "version is required")
			}
			return nil
		})),
	)
}
