package cnf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ToDIMACS transforms the CNF into DIMACS-CNF string format
func (cnf *CNF) ToDIMACS() string {
	var builder strings.Builder
	cnf.WriteDIMACS(&builder) // Writing into a strings.Builder never fails
	return builder.String()
}

// WriteDIMACS writes the comments, the problem line and the clauses of the CNF in DIMACS format
func (cnf *CNF) WriteDIMACS(w io.Writer) error {
	writer := bufio.NewWriter(w)
	for _, comment := range cnf.Comments {
		fmt.Fprintf(writer, "c %s\n", comment)
	}
	fmt.Fprintf(writer, "p cnf %d %d\n", cnf.NV, len(cnf.Clauses))
	for _, clause := range cnf.Clauses {
		writeClause(writer, clause)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("could not write DIMACS output: %w", err)
	}
	return nil
}

// ToDIMACS transforms the WCNF into the "p wcnf" format, where hard clauses carry the top weight
func (wcnf *WCNF) ToDIMACS() string {
	var builder strings.Builder
	wcnf.WriteDIMACS(&builder)
	return builder.String()
}

func (wcnf *WCNF) WriteDIMACS(w io.Writer) error {
	writer := bufio.NewWriter(w)
	top := wcnf.Top()
	for _, comment := range wcnf.Comments {
		fmt.Fprintf(writer, "c %s\n", comment)
	}
	fmt.Fprintf(writer, "p wcnf %d %d %d\n", wcnf.NV, len(wcnf.Hard)+len(wcnf.Soft), top)
	for _, clause := range wcnf.Hard {
		fmt.Fprintf(writer, "%d ", top)
		writeClause(writer, clause)
	}
	for i, clause := range wcnf.Soft {
		fmt.Fprintf(writer, "%d ", wcnf.Weights[i])
		writeClause(writer, clause)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("could not write DIMACS output: %w", err)
	}
	return nil
}

func writeClause(writer *bufio.Writer, clause []int) {
	for _, literal := range clause {
		fmt.Fprintf(writer, "%d ", literal)
	}
	writer.WriteString("0\n")
}

// Parse reads a DIMACS-CNF instance. Clauses may span several lines and must be terminated by 0.
// Comment lines are kept, a "%" line ends the input (SATLIB convention).
// When a problem line is present, literals must not exceed its variable count.
func Parse(r io.Reader) (*CNF, error) {
	cnf := &CNF{Clauses: [][]int{}}
	err := scanDIMACS(r, "cnf", func(header []int) error {
		cnf.NV = header[0]
		cnf.Clauses = make([][]int, 0, min(header[1], 1<<16))
		return nil
	}, func(comment string) {
		cnf.Comments = append(cnf.Comments, comment)
	}, func(clause []int) error {
		cnf.Clauses = append(cnf.Clauses, clause)
		cnf.NV = max(cnf.NV, maxVar(clause))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cnf, nil
}

func ParseFile(path string) (*CNF, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	cnf, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("could not parse DIMACS file %q: %w", path, err)
	}
	return cnf, nil
}

// ParseWCNF reads a "p wcnf" instance. Every clause starts with its weight;
// clauses whose weight reaches the top declared in the problem line are hard.
// Without a top every clause is soft.
func ParseWCNF(r io.Reader) (*WCNF, error) {
	wcnf := &WCNF{}
	top := 0
	err := scanDIMACS(r, "wcnf", func(header []int) error {
		wcnf.NV = header[0]
		if len(header) > 2 {
			top = header[2]
		}
		return nil
	}, func(comment string) {
		wcnf.Comments = append(wcnf.Comments, comment)
	}, func(clause []int) error {
		if len(clause) == 0 {
			return fmt.Errorf("missing clause weight")
		}
		weight, literals := clause[0], clause[1:]
		if top > 0 && weight >= top {
			wcnf.AppendHard(literals)
			return nil
		}
		if weight <= 0 {
			return ErrInvalidWeight
		}
		wcnf.AppendSoft(literals, weight)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wcnf, nil
}

// scanDIMACS drives the line based reading shared by the CNF and WCNF parsers
func scanDIMACS(r io.Reader, format string, onHeader func([]int) error, onComment func(string), onClause func([]int) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // Clause lines of large instances go beyond the default token size

	declaredVars := -1
	lineNumber := 0
	clause := []int{}
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line[0] == 'c':
			// Comments
			onComment(strings.TrimSpace(line[1:]))
			continue
		case line[0] == '%':
			// SATLIB end of instance marker
			return finishClause(clause, lineNumber)
		case line[0] == 'p':
			// Problem line
			header, err := parseHeader(line, format)
			if err != nil {
				return &ParseError{Line: lineNumber, Text: line, Err: err}
			}
			if err := onHeader(header); err != nil {
				return &ParseError{Line: lineNumber, Text: line, Err: err}
			}
			declaredVars = header[0]
			continue
		}

		// Clause line
		for _, field := range strings.Fields(line) {
			literal, err := strconv.Atoi(field)
			if err != nil {
				return &ParseError{Line: lineNumber, Text: line, Err: fmt.Errorf("invalid literal %q: %w", field, err)}
			}
			if literal == 0 {
				if err := onClause(clause); err != nil {
					return &ParseError{Line: lineNumber, Text: line, Err: err}
				}
				clause = []int{}
				continue
			}
			// The first number of a weighted clause is its weight, not a literal
			isWeight := format == "wcnf" && len(clause) == 0
			if !isWeight && declaredVars >= 0 && abs(literal) > declaredVars {
				return &ParseError{Line: lineNumber, Text: line, Err: fmt.Errorf("%w: %d > %d", ErrLiteralOutOfRange, abs(literal), declaredVars)}
			}
			clause = append(clause, literal)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading DIMACS input: %w", err)
	}
	return finishClause(clause, lineNumber)
}

func finishClause(clause []int, lineNumber int) error {
	if len(clause) > 0 {
		return &ParseError{Line: lineNumber, Err: ErrUnfinishedClause}
	}
	return nil
}

func parseHeader(line string, format string) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[1] != format {
		return nil, fmt.Errorf("invalid problem line, expected \"p %s <variables> <clauses>\"", format)
	}
	if format == "cnf" && len(fields) != 4 || format == "wcnf" && len(fields) > 5 {
		return nil, fmt.Errorf("invalid problem line: unexpected fields")
	}

	header := make([]int, 0, len(fields)-2)
	for _, field := range fields[2:] {
		value, err := strconv.Atoi(field)
		if err != nil || value < 0 {
			return nil, fmt.Errorf("invalid number %q in problem line", field)
		}
		header = append(header, value)
	}
	return header, nil
}
