package ftpserver

import (
	"bufio"
	"io"
)

type convertMode int

const (
	convertModeToCRLF convertMode = iota
	convertModeToLF
)

// asciiConverter rewrites line endings on the fly for TYPE A transfers,
// grounded on the teacher's asciiconverter.go.
type asciiConverter struct {
	reader    *bufio.Reader
	mode      convertMode
	remaining []byte
}

func newASCIIConverter(r io.Reader, mode convertMode) *asciiConverter {
	return &asciiConverter{
		reader: bufio.NewReaderSize(r, 4096),
		mode:   mode,
	}
}

func (c *asciiConverter) Read(p []byte) (n int, err error) {
	var data []byte

	if len(c.remaining) > 0 {
		data = c.remaining
		c.remaining = nil
	} else {
		data, _, err = c.reader.ReadLine()
		if err != nil {
			return
		}
	}

	n = len(data)
	if n > 0 {
		maxSize := len(p) - 2
		if n > maxSize {
			copy(p, data[:maxSize])
			c.remaining = data[maxSize:]

			return maxSize, nil
		}

		copy(p[:n], data[:n])
	}

	// A short read at end-of-line needs its line ending restored; a
	// trailing partial line without one is left untouched so files with
	// no line endings pass through unchanged.
	if err = c.reader.UnreadByte(); err != nil {
		return
	}

	lastByte, readErr := c.reader.ReadByte()

	if readErr == nil && lastByte == '\n' {
		switch c.mode {
		case convertModeToCRLF:
			p[n] = '\r'
			p[n+1] = '\n'
			n += 2
		case convertModeToLF:
			p[n] = '\n'
			n++
		}
	}

	err = readErr

	return n, err
}
