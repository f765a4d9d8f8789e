package rally

import (
	"net/url"
	"strings"
)

// CreateID is the id token used to address creation endpoints
const CreateID = "create"

// typeAliases maps user-facing type names to Rally path segments
var typeAliases = map[string]string{
	"story":      "hierarchicalrequirement",
	"userstory":  "hierarchicalrequirement",
	"feature":    "portfolioitem/feature",
	"initiative": "portfolioitem/initiative",
	"theme":      "portfolioitem/theme",
}

// Translate returns the API path segment for a type name.
// Unknown names are returned lower-cased.
func Translate(typeName string) string {
	typeName = strings.ToLower(typeName)
	if alias, ok := typeAliases[typeName]; ok {
		return alias
	}
	return typeName
}

// BuildRef builds the reference path for an object or, when id is empty
// or "0", for the collection of typeName.
func BuildRef(typeName, id string) string {
	ref := "/" + Translate(typeName)
	if id != "" && id != "0" {
		ref += "/" + id
	}
	return ref + ".js"
}

// Ref builds the reference path for an object
func (c *Client) Ref(typeName, id string) string {
	return BuildRef(typeName, id)
}

// applyWorkspace appends the current workspace and any params to path
func (c *Client) applyWorkspace(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if ws := c.Workspace(); ws != "" {
		params.Set("workspace", ws)
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return path
}
