// Package override parses trailing CLI tokens into header and body
// overrides and merges them onto a resolved request.
//
// Token grammar:
//
//	key:value   header
//	key=value   body field
//	--form      encode body fields as a form (leading tokens only)
//
// CLI values always win over template values. A key present on both sides
// keeps the template's position; CLI-only keys are appended in CLI order.
package override
