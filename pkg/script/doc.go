/*
Package script loads check scripts and runs them against a root state.

A script is a YAML or JSON document listing chains of checks:

	chains:
	  - - check_html
	    - check_body
	    - has_equal_attr: {attrs: [class]}
	  - - check_body
	    - check_tag: {name: p, index: 1, missing_msg: "Add a second paragraph."}
	    - has_equal_text

A step is either a check name or a mapping from one check name to its
arguments. A scalar argument binds to the check's positional parameter
(name for check_tag, text for has_code). Keys a check does not recognize are
passed to its messages as template values.
*/
package script
