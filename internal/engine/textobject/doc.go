// Package textobject resolves text objects: spans of text selected by
// their content rather than by cursor movement.
//
// Find takes a character index, an object kind and an inclusion flag and
// returns a half-open [Start, End) range, or None when the index is not
// inside such an object. "Inner" objects (include=false) exclude
// delimiters and surrounding whitespace; "around" objects include them.
//
// Paragraph objects are resolved line by line and report Linewise.
// A paragraph object requested on a blank line resolves to None.
//
// Tag objects match the nearest opening tag with a literal search for
// its closing tag, so nested tags with the same name are not balanced.
package textobject
