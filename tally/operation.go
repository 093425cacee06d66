package tally

type Operation string

const (
	Read     Operation = "read"
	Increase Operation = "increase"
	Reset    Operation = "reset"
)

func (op Operation) String() string {
	return string(op)
}

// Operations lists every counter operation in route order.
func Operations() []Operation {
	return []Operation{Read, Increase, Reset}
}
