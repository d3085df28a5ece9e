// Package prompt asks for template variables on a line-oriented terminal in
// the same format cookiecutter uses, so scripted drivers written for one work
// against the other.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pyskel/pyskel/internal/metadata"
)

// Run prompts for every visible variable in order and returns the answers.
// Hidden variables and, when noInput is set, every variable take their
// rendered default without reading r.
func Run(vars []metadata.Variable, r io.Reader, w io.Writer, noInput bool) (map[string]string, error) {
	reader := bufio.NewReader(r)
	answers := make(map[string]string, len(vars))

	for _, v := range vars {
		def, err := metadata.RenderDefault(v, answers)
		if err != nil {
			return nil, err
		}
		if v.Hidden || noInput {
			answers[v.Name] = def
			continue
		}

		var answer string
		if len(v.Choices) > 0 {
			answer, err = selectChoice(reader, w, v)
		} else {
			answer, err = readVariable(reader, w, v.Name, def)
		}
		if err != nil {
			return nil, err
		}
		answers[v.Name] = answer
	}
	return answers, nil
}

// readVariable prints "name [default]: " and returns the answer, or def when
// the answer is empty.
func readVariable(reader *bufio.Reader, w io.Writer, name, def string) (string, error) {
	fmt.Fprintf(w, "%s [%s]: ", name, def)

	line, err := readLine(reader)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// selectChoice presents a numbered list and returns the chosen value.
func selectChoice(reader *bufio.Reader, w io.Writer, v metadata.Variable) (string, error) {
	fmt.Fprintf(w, "Select %s:\n", v.Name)
	nums := make([]string, len(v.Choices))
	for i, c := range v.Choices {
		nums[i] = strconv.Itoa(i + 1)
		fmt.Fprintf(w, "%d - %s\n", i+1, c)
	}
	fmt.Fprintf(w, "Choose from %s [1]: ", strings.Join(nums, ", "))

	line, err := readLine(reader)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", v.Name, err)
	}
	if line == "" {
		return v.Choices[0], nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(v.Choices) {
		return "", fmt.Errorf("invalid selection %q for %s: choose from %s", line, v.Name, strings.Join(nums, ", "))
	}
	return v.Choices[num-1], nil
}

// readLine returns the next line without its terminator. A final line with no
// terminator is still returned; EOF with nothing read is an error.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
