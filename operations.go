package heytaco

// Operation identifies one of the closed set of scoring operations
type Operation string

// Known operations. SelfPlus is the rejected variant of Plus where the
// sender and the target are the same user
const (
	Plus     Operation = "plus"
	SelfPlus Operation = "selfPlus"
)

// GetOperationName maps a mathematical operator symbol to its operation.
// The second return value is false for any unrecognized symbol
func GetOperationName(symbol string) (op Operation, ok bool) {
	switch symbol {
	case "+":
		return Plus, true
	}

	return "", false
}
