package steps

import (
	"errors"

	"github.com/datachef/datachef/internal/dataset"
)

// Comment attaches a textual comment to a dataset.
type Comment struct {
	Base
}

// NewComment creates a comment annotation step.
func NewComment() *Comment {
	return &Comment{NewBase("Comment", map[string]any{
		"comment": "",
	})}
}

// Annotate appends the comment to the dataset's annotations.
func (c *Comment) Annotate(d *dataset.Dataset) error {
	comment := c.stringProp("comment")
	if comment == "" {
		return errors.New("no comment to annotate with")
	}
	d.Annotations = append(d.Annotations, dataset.Annotation{
		Type:    "comment",
		Content: map[string]any{"comment": comment},
	})
	return nil
}
