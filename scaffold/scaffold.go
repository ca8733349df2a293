// Package scaffold provides the embedded template used by `folio new` to
// seed the body of a fresh post.
package scaffold

import "embed"

// PostTemplate is the path of the post body template inside Templates.
const PostTemplate = "templates/post.md.tmpl"

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
