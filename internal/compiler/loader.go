package compiler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/remapd/remapd/internal/ir"
)

const includePrefix = "include "

// readFile reads the root config file line by line, expanding include
// directives. Expansion is single-level: included content is spliced in
// verbatim and never re-scanned for further include lines.
// Unresolvable includes are skipped with a warning; an unreadable root
// file, an over-long line, or exceeding the total size cap is fatal.
func (c *Compiler) readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &Error{Code: ErrCodeFileRead, Path: path, Message: "failed to open: " + err.Error()}
	}
	defer f.Close()

	var out strings.Builder
	sc := bufio.NewScanner(f)
	lnum := 0

	for sc.Scan() {
		lnum++
		line := sc.Text()

		if len(line) >= ir.MaxLineLen {
			return "", &Error{
				Code: ErrCodeLineTooLong, Path: path, Line: lnum,
				Message: fmt.Sprintf("maximum line length (%d) exceeded", ir.MaxLineLen),
			}
		}

		if strings.HasPrefix(line, includePrefix) {
			arg := line[len(includePrefix):]

			resolved := c.resolveIncludePath(path, arg)
			if resolved == "" {
				c.warnf(lnum, "failed to resolve include path: %s", arg)
				continue
			}

			data, err := os.ReadFile(resolved)
			if err != nil {
				c.warnf(lnum, "failed to include %s: %v", arg, err)
				continue
			}

			if out.Len()+len(data) > ir.MaxFileSize {
				return "", &Error{
					Code: ErrCodeFileTooLarge, Path: path, Line: lnum,
					Message: fmt.Sprintf("maximum file size (%d) exceeded", ir.MaxFileSize),
				}
			}
			out.Write(data)
			continue
		}

		if out.Len()+len(line)+1 > ir.MaxFileSize {
			return "", &Error{
				Code: ErrCodeFileTooLarge, Path: path, Line: lnum,
				Message: fmt.Sprintf("maximum file size (%d) exceeded", ir.MaxFileSize),
			}
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}

	if err := sc.Err(); err != nil {
		return "", &Error{Code: ErrCodeFileRead, Path: path, Message: "read failed: " + err.Error()}
	}

	return out.String(), nil
}

// resolveIncludePath resolves an include argument against the including
// file's directory, then the share directory. Arguments containing a '.'
// never resolve, whether or not a matching file exists.
func (c *Compiler) resolveIncludePath(includingPath, arg string) string {
	if strings.Contains(arg, ".") {
		return ""
	}

	candidates := []string{
		filepath.Join(filepath.Dir(includingPath), arg),
		filepath.Join(c.ShareDir, arg),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
