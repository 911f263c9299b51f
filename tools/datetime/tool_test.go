package datetime

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func Test(t *testing.T) {
	fixed := time.Date(2025, time.December, 20, 14, 30, 0, 0, time.UTC)
	tool := New(WithClock(func() time.Time { return fixed }))
	output := new(Output)
	if err := tool.Run(context.Background(), new(Input), output); err != nil {
		t.Fatal(err)
	}
	if output.Datetime != "Saturday, December 20, 2025 - 02:30 PM" {
		t.Errorf("unexpected datetime %q", output.Datetime)
	}
}

func ExampleTool() {
	fixed := time.Date(2025, time.December, 20, 14, 30, 0, 0, time.UTC)
	tool := New(WithClock(func() time.Time { return fixed }))
	output := new(Output)
	tool.Run(context.Background(), new(Input), output)
	fmt.Println(output.Datetime)
	// Output:
	// Saturday, December 20, 2025 - 02:30 PM
}
