package ftpserver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

const minTransferBufferSize = 4096

func (c *clientHandler) handleRETR(arg string) {
	c.transferFile(arg, transferDirectionDownload)
}

func (c *clientHandler) handleSTOR(arg string) {
	c.transferFile(arg, transferDirectionUpload)
}

func (c *clientHandler) handleAPPE(arg string) {
	c.transferFile(arg, transferDirectionAppend)
}

func (c *clientHandler) handleSTOU(_ string) {
	c.transferFile(uuid.NewString(), transferDirectionUpload)
}

type transferDirection int

const (
	transferDirectionDownload transferDirection = iota
	transferDirectionUpload
	transferDirectionAppend
)

// transferFile implements the common RETR/STOR/APPE/STOU protocol of
// spec §4.4.
func (c *clientHandler) transferFile(arg string, dir transferDirection) {
	abs, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		c.restOffset = 0

		return
	}

	offset := c.restOffset
	c.restOffset = 0

	file, err := c.openTransferFile(abs, dir, &offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileExists):
			c.writeMessage(StatusFileUnavailable, "Permission denied, the file exists.")
		case errors.Is(err, ErrOffsetOutOfRange):
			c.writeMessage(StatusFileUnavailable, "Offset out of range.")
		case errors.Is(err, ErrNotFound):
			c.writeMessage(StatusFileNameNotAllowed, "Not found.")
		default:
			c.writeMessage(StatusFileUnavailable, c.driverErr("open transfer file", err))
		}

		return
	}

	conn, transfer, err := c.openDataConnection(fmt.Sprintf(
		"Opening %s mode data connection for %s", transferTypeName(c), arg))
	if err != nil {
		_ = file.Close()
		return
	}

	xferErr := c.copyTransferData(conn, file, dir, transfer)

	if errClose := file.Close(); errClose != nil && xferErr == nil && dir != transferDirectionDownload {
		xferErr = errClose
	}

	_ = conn.Close()
	c.closeDataConnection(transfer, xferErr)
}

func transferTypeName(c *clientHandler) string {
	c.user.Lock()
	defer c.user.Unlock()

	if c.user.Type == TransferTypeASCII {
		return "ASCII"
	}

	return "BINARY"
}

func (c *clientHandler) openTransferFile(abs string, dir transferDirection, offset *int64) (afFile, error) {
	switch dir {
	case transferDirectionDownload:
		info, err := c.driver.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		if *offset >= info.Size() {
			return nil, ErrOffsetOutOfRange
		}

		f, err := c.driver.OpenFile(abs, os.O_RDONLY, 0o644)
		if err != nil {
			return nil, err
		}

		if *offset > 0 {
			if _, err := f.Seek(*offset, io.SeekStart); err != nil {
				_ = f.Close()
				return nil, err
			}
		}

		return f, nil

	case transferDirectionAppend:
		info, err := c.driver.Stat(abs)
		if err == nil {
			*offset = info.Size()
		} else {
			*offset = 0
		}

		f, err := c.driver.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}

		return f, nil

	default: // transferDirectionUpload
		info, err := c.driver.Stat(abs)

		switch {
		case err == nil && info.IsDir():
			return nil, ErrFileExists
		case err == nil && *offset == 0:
			return nil, fmt.Errorf("the file exists: %w", ErrFileExists)
		case err == nil && *offset > info.Size():
			*offset = info.Size()
		}

		flags := os.O_WRONLY | os.O_CREATE
		if *offset == 0 {
			flags |= os.O_TRUNC
		}

		f, err := c.driver.OpenFile(abs, flags, 0o644)
		if err != nil {
			return nil, err
		}

		if *offset > 0 {
			if _, err := f.Seek(*offset, io.SeekStart); err != nil {
				_ = f.Close()
				return nil, err
			}
		}

		return f, nil
	}
}

// afFile is the subset of afero.File used by the transfer path.
type afFile interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// copyTransferData streams between the data connection and the file in
// fixed-size blocks, checking the abort flag before each block (spec §4.4
// step 4, §5).
func (c *clientHandler) copyTransferData(conn io.ReadWriter, file afFile, dir transferDirection, transfer *TransferSession) error {
	var src io.Reader

	var dst io.Writer

	if dir == transferDirectionDownload {
		src, dst = file, conn
	} else {
		src, dst = conn, file
	}

	c.user.Lock()
	ascii := c.user.Type == TransferTypeASCII
	c.user.Unlock()

	if ascii {
		mode := convertModeToCRLF
		if dir != transferDirectionDownload {
			mode = convertModeToLF
		}

		src = newASCIIConverter(src, mode)
	}

	buf := make([]byte, minTransferBufferSize)

	for {
		if c.checkAborted(transfer) {
			return ErrTransferAborted
		}

		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}

			c.user.Lock()
			transfer.BytesTransferred += int64(n)
			c.user.Unlock()
		}

		if err != nil {
			if err == io.EOF {
				return nil
			}

			return err
		}
	}
}

func (c *clientHandler) handleALLO(_ string) {
	c.writeMessage(StatusFileActionOK, "ALLO command okay.")
}

func (c *clientHandler) handleREST(arg string) {
	offset, err := ParseUint64Arg(arg)
	if err != nil {
		c.writeMessage(StatusSyntaxErrorParams, fmt.Sprintf("Could not parse offset: %v", err))
		return
	}

	c.restOffset = int64(offset)
	c.writeMessage(StatusFileActionPending, "Restart marker accepted.")
}

func (c *clientHandler) handleDELE(arg string) {
	abs, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	if err := c.driver.Remove(abs); err != nil {
		c.writeMessage(StatusFileUnavailable, c.driverErr("DELE", err))
		return
	}

	c.writeMessage(StatusFileActionOK, "Requested file action okay, completed.")
}

func (c *clientHandler) handleRNFR(arg string) {
	abs, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	if _, err := c.driver.Stat(abs); err != nil {
		c.writeMessage(StatusFileUnavailable, c.driverErr("RNFR", err))
		return
	}

	c.user.Lock()
	c.user.SetRenameFrom(abs)
	c.user.Unlock()

	c.writeMessage(StatusFileActionPending, "Requested file action pending further information.")
}

func (c *clientHandler) handleRNTO(arg string) {
	c.user.Lock()
	src := c.user.RenameFrom()
	c.user.Unlock()

	if src == "" {
		c.logger.Debug("rnto without a prior rnfr", "err", ErrBadSequence)
		c.writeMessage(StatusBadSequenceOfCmds, "RNFR is expected before RNTO.")

		return
	}

	dst, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	if err := c.driver.Rename(src, dst); err != nil {
		c.writeMessage(StatusFileUnavailable, c.driverErr("RNTO", err))
		return
	}

	c.user.Lock()
	c.user.SetRenameFrom("")
	c.user.Unlock()

	c.writeMessage(StatusFileActionOK, "Requested file action okay, completed.")
}

const mdtmFormat = "20060102150405"

func (c *clientHandler) handleMDTM(arg string) {
	abs, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	info, err := c.driver.Stat(abs)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, c.driverErr("MDTM", err))
		return
	}

	c.writeMessage(StatusFileStatus, info.ModTime().UTC().Format(mdtmFormat))
}

func (c *clientHandler) handleABOR(_ string) {
	c.user.Lock()
	if t := c.user.Transfer(); t != nil {
		t.Aborted = true
	}
	c.user.Unlock()

	c.writeMessage(StatusClosingDataConn, "ABOR command processed.")
}
