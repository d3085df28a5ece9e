package metadata

import (
	"fmt"
	"strings"

	"github.com/pyskel/pyskel/internal/schema"
)

// Validate checks p against the metadata schema and returns an error listing
// every issue found.
func Validate(p Project) error {
	res, err := schema.Validate(schema.Metadata, p)
	if err != nil {
		return err
	}
	if res.Valid {
		return nil
	}
	msgs := make([]string, len(res.Issues))
	for i, issue := range res.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Errorf("invalid project metadata:\n  %s", strings.Join(msgs, "\n  "))
}
