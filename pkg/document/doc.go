/*
Package document parses submitted and reference markup into an immutable tree of nodes.

The parser is deliberately tolerant and non-inferring: it never synthesizes the
implied <html>, <head> or <body> elements an HTML5 tree builder would add. A tag
that is absent from the source is absent from the tree, so checks can treat
"missing element" as a first-class comparison outcome instead of a parse failure.

# Node kinds

The tree uses a closed set of kinds:

  - DocumentNode: the synthetic root returned by Parse.
  - ElementNode: a named tag with ordered attributes and children.
  - TextNode: decoded character data.
  - DoctypeNode: a <!DOCTYPE ...> declaration.
  - CommentNode: a <!-- ... --> comment.

Nodes are never mutated after Parse returns; sub-trees handed to callers are
references into the same tree, never copies.
*/
package document
