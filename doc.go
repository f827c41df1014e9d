/*
Package markcheck grades markup submissions against a reference document.

A grading task is a check script (chains of checks such as check_body,
check_tag or has_equal_attr) plus a reference ("solution") document. The engine
parses both documents, runs every chain left to right from the document roots
and stops at the first check that fails. A failing check produces a single
explanation built from the context the chain narrowed through:

	Inspect the `<body>` tag. Expected attribute `class` to be `"example"`, but found `"hello"`.

# Outcomes

  - Success: the payload {correct: true, message: "Great work!"}.
  - Submission failure: {correct: false, message: <escaped explanation>}.
  - Authoring error: the script or the reference document is invalid for the
    requested checks. It is returned as an error and never becomes a payload.

# Usage

	eng := markcheck.New()
	res, err := eng.Evaluate(ctx, "- [check_body, has_equal_attr]", student, solution)
	if err != nil {
		// fix the exercise, not the submission
	}
	fmt.Println(res.Correct, res.Message)

Checks can also be composed directly in Go with the checks package:

	root, _ := domain.NewState(student, solution)
	err := checks.Ex(root).CheckBody().CheckTag("p", checks.WithIndex(1)).HasEqualText().Err()
*/
package markcheck
