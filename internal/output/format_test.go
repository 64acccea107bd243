package output_test

import (
	"bytes"
	"testing"

	"todo/internal/output"
	"todo/internal/task"
)

func TestFormatter_Task(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(false)

	f.Task(&buf, 3, task.Task{Title: "Buy\nmilk", Key: 1, Remark: "2 litres"}, false)

	expected := "   3  Buy milk\n      2 litres\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatter_StateBothSections(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(false)
	s := task.State{
		Pending:   []task.Task{{Title: "a", Key: 1}},
		Completed: []task.Task{{Title: "b", Key: 2}},
	}

	if !f.State(&buf, s, true, true) {
		t.Fatal("expected output")
	}

	expected := "------------\nTodo (1)\n------------\n   1  a\n" +
		"------------\nDone (1)\n------------\n   1  b\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatter_StateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if output.NewFormatter(false).State(&buf, task.State{}, true, true) {
		t.Error("expected nothing printed")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
