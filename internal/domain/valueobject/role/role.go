package role

type Role string

const (
	Student Role = "student"
	Staff   Role = "staff"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case Student, Staff:
		return true
	default:
		return false
	}
}
