package tcrf

import (
	"fmt"
	"io"

	"egov/nlp/types"
	"egov/util/conf"
)

const (
	NUM_HEADER_FIELDS = 3
	NUM_LABEL_FIELDS  = 5
	LABEL_NAME_FIELD  = 2
)

// ReadLabels reads the label section of a tcrf rule file:
//
//	<n_labels> <n_unary_rules> <n_binary_rules>
//	<tag> <id> <label> <f1> <f2>    (n_labels times)
//
// A label's id is its position in the file. The rule sections that follow
// are not needed for governor estimation and are not read.
func ReadLabels(reader io.Reader) (*types.LabelTable, error) {
	c, err := conf.Read(reader)
	if err != nil {
		return nil, err
	}
	return readLabelsConf(c)
}

func readLabelsConf(c *conf.Conf) (*types.LabelTable, error) {
	fields := c.Fields()
	if len(fields) < NUM_HEADER_FIELDS {
		return nil, fmt.Errorf("label file header: expected %d fields, got %d", NUM_HEADER_FIELDS, len(fields))
	}
	numLabels, err := ParseInt(fields[0])
	if err != nil || numLabels < 0 {
		return nil, fmt.Errorf("error parsing label count (%s)", fields[0])
	}
	for i := 1; i < NUM_HEADER_FIELDS; i++ {
		if _, err := ParseInt(fields[i]); err != nil {
			return nil, fmt.Errorf("error parsing rule count (%s): %v", fields[i], err)
		}
	}
	fields = fields[NUM_HEADER_FIELDS:]
	if len(fields) < numLabels*NUM_LABEL_FIELDS {
		return nil, fmt.Errorf("expected %d labels, found fields for %d", numLabels, len(fields)/NUM_LABEL_FIELDS)
	}
	labels := types.NewLabelTable(numLabels)
	for i := 0; i < numLabels; i++ {
		record := fields[i*NUM_LABEL_FIELDS : (i+1)*NUM_LABEL_FIELDS]
		if err := labels.Set(i, record[LABEL_NAME_FIELD]); err != nil {
			return nil, fmt.Errorf("label %d: %v", i, err)
		}
	}
	labels.Freeze()
	return labels, nil
}

func ReadLabelsFile(filename string) (*types.LabelTable, error) {
	c, err := conf.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return readLabelsConf(c)
}
