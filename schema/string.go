package schema

// String is a plain-text schema used for system turns and raw model output.
type String string

func (s String) Attachement() *Attachement {
	return nil
}

func (s String) SetAttachement(v *Attachement) {
}

func (s String) String() string {
	return string(s)
}

func (s *String) Unmarshal(bs []byte) error {
	*s = String(bs)
	return nil
}

func NewString(v string) *String {
	s := String(v)
	return &s
}
