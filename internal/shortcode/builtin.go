package shortcode

import (
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// BuiltInDefinitions returns the core shortcode catalogue shipped with go-relnotes.
func BuiltInDefinitions() []interfaces.ShortcodeDefinition {
	return []interfaces.ShortcodeDefinition{
		noteDefinition(),
		imageDefinition(),
		codePreviewDefinition(),
		inlineCalloutDefinition(),
	}
}

func noteDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "note",
		Version:     "1.0.0",
		Description: "Styled callout block for release dates and announcements",
		Category:    "callout",
		AllowInner:  true,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:    "noteType",
					Type:    interfaces.ShortcodeParamString,
					Default: "Note",
					Enum:    []string{"Tip", "Note", "Warning", "Danger"},
				},
			},
		},
	}
}

func imageDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "image",
		Version:     "1.0.0",
		Description: "Screenshot or diagram with alt text and optional caption",
		Category:    "media",
		AllowInner:  false,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "src",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
				},
				{
					Name:    "alt",
					Type:    interfaces.ShortcodeParamString,
					Default: "",
				},
				{
					Name: "caption",
					Type: interfaces.ShortcodeParamString,
				},
			},
		},
	}
}

func codePreviewDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "codePreview",
		Version:     "1.0.0",
		Description: "Side-by-side walkthrough container for code snippets",
		Category:    "code",
		AllowInner:  true,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name: "title",
					Type: interfaces.ShortcodeParamString,
				},
			},
		},
	}
}

func inlineCalloutDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "inlineCallout",
		Version:     "1.0.0",
		Description: "Linked callout card pointing at docs or upgrade guides",
		Category:    "callout",
		AllowInner:  true,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name: "icon",
					Type: interfaces.ShortcodeParamString,
				},
				{
					Name:     "bold",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
				},
				{
					Name:     "href",
					Type:     interfaces.ShortcodeParamURL,
					Required: true,
				},
			},
		},
	}
}
