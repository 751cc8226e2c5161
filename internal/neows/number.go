package neows

import "encoding/json"

// Number is a numeric leaf the upstream sends either as a JSON number or
// as a string. The text is kept unparsed; callers validate it.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	*n = Number(b)
	return nil
}

func (n Number) String() string {
	return string(n)
}
