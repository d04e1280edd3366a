package gradesrvc

// Advisory hints attached to failing results when the failure shape is
// recognizable. They annotate the result; they are not result kinds.
const (
	hintNoOutput = "No output was produced. Your function is likely returning None " +
		"or printing instead of returning a value, or it contains an infinite loop."

	hintTimeLimit = "Time limit exceeded. Check that your loop and pointer variables " +
		"actually advance on every iteration."

	hintStillPending = "The execution backend did not finish running this test in time. " +
		"This is usually transient; try again."
)
