package nobel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	MinYear = 2000
	MaxYear = 2023
)

// PromptYear asks for a year until a number in [from, to] is entered.
func PromptYear(in io.Reader, out io.Writer, from, to int) (int, error) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "Enter the year from which to search for Nobel Prize winners: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read year: %w", err)
			}
			return 0, fmt.Errorf("read year: %w", io.ErrUnexpectedEOF)
		}

		year, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprint(out, "Entered value is not a number! Try again.\n\n")
			continue
		}

		if err := ValidateYear(year, from, to); err != nil {
			fmt.Fprintf(out, "Entered number is not a year between %d and %d!\n", from, to)
			fmt.Fprint(out, "Try again.\n\n")
			continue
		}

		return year, nil
	}
}

func ValidateYear(year, from, to int) error {
	if year < from || year > to {
		return fmt.Errorf("year %d is not between %d and %d", year, from, to)
	}
	return nil
}
