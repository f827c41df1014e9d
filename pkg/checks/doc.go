/*
Package checks is the check library.

Every check takes a *domain.State plus check-specific arguments and returns
the next State. Structural checks (CheckDoctype, CheckHTML, CheckHead,
CheckBody, CheckTag) narrow the scope and attach a context message; content
checks (HasCode, HasEqualText, HasEqualAttr) return the state they were given.

A check returns one of three kinds of error:

  - *domain.Failure when the submission does not meet the expectation.
  - *domain.InstructorError when the reference document cannot support the check.
  - *domain.ArgumentError when an argument is malformed. These are detected
    before either document is inspected.

Messages are templates. Values passed with WithValue are available to every
message of a check, but values the check sets itself (tag, index, attr, stu,
sol, text) always take precedence.
*/
package checks
