package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter asks questions on out and reads answers line by line from in.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// line prints question and returns the trimmed answer.
func (p *prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// count asks until it gets a positive number.
func (p *prompter) count(question string) (int, error) {
	for {
		answer, err := p.line(question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n > 0 {
			return n, nil
		}
		fmt.Fprintf(p.out, "%q is not a positive number\n", answer)
	}
}

// name asks until it gets a non-empty name not already in taken.
func (p *prompter) name(question string, taken map[string]bool) (string, error) {
	for {
		answer, err := p.line(question)
		if err != nil {
			return "", err
		}
		switch {
		case answer == "":
			fmt.Fprintln(p.out, "name cannot be empty")
		case taken[answer]:
			fmt.Fprintf(p.out, "%q is already trained\n", answer)
		default:
			return answer, nil
		}
	}
}

// names asks how many gestures to train and then for each name.
func (p *prompter) names(taken map[string]bool) ([]string, error) {
	n, err := p.count("How many gestures do you want to train? ")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(taken)+n)
	for k := range taken {
		seen[k] = true
	}

	names := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		name, err := p.name(fmt.Sprintf("Name of gesture %d: ", i), seen)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("input ended after %d of %d names", len(names), n)
			}
			return nil, err
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
