package schema

import "encoding/json"

// Input is the default chat input schema: a single user message.
type Input struct {
	Base
	// ChatMessage is the message of an user input
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The message of the user input." validate:"required"`
}

func NewInput(msg string) *Input {
	return &Input{
		ChatMessage: msg,
	}
}

func (s Input) String() string {
	return s.ChatMessage
}

// Output is the default chat output schema: a single assistant message.
type Output struct {
	Base
	// ChatMessage is the answer of the agent
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The message of the chat agent response." validate:"required"`
}

func NewOutput(msg string) *Output {
	return &Output{
		ChatMessage: msg,
	}
}

func (s Output) String() string {
	return s.ChatMessage
}

func (s *Output) Unmarshal(bs []byte) error {
	type plain Output
	var v plain
	if err := json.Unmarshal(bs, &v); err != nil {
		return err
	}
	*s = Output(v)
	return nil
}
