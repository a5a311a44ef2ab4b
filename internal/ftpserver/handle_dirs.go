package ftpserver

import (
	"fmt"
	"os"
)

func (c *clientHandler) handleCWD(arg string) {
	abs, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	info, err := c.driver.Stat(abs)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, c.driverErr("CWD", err))
		return
	}

	if !info.IsDir() {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	c.user.Lock()
	rel, err := c.guard.RelativePath(abs)
	if err == nil {
		c.user.WorkingDir = rel
	}
	c.user.Unlock()

	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	c.writeMessage(StatusFileActionOK, "Requested file action okay, completed.")
}

func (c *clientHandler) handleCDUP(_ string) {
	c.handleCWD("..")
}

func (c *clientHandler) handlePWD(_ string) {
	c.user.Lock()
	dir := c.user.WorkingDir
	c.user.Unlock()

	c.writeMessage(StatusPathCreatedOrPWD, fmt.Sprintf("%q is the current directory.", dir))
}

func (c *clientHandler) handleMKD(arg string) {
	abs, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	if err := c.driver.Mkdir(abs, 0o755); err != nil {
		c.writeMessage(StatusFileUnavailable, c.driverErr("MKD", err))
		return
	}

	rel, err := c.guard.RelativePath(abs)
	if err != nil {
		rel = abs
	}

	c.writeMessage(StatusPathCreatedOrPWD, fmt.Sprintf("%q created.", rel))
}

func (c *clientHandler) handleRMD(arg string) {
	abs, err := c.absPath(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "Permission denied.")
		return
	}

	if err := c.driver.Remove(abs); err != nil {
		c.writeMessage(StatusFileUnavailable, c.driverErr("RMD", err))
		return
	}

	c.writeMessage(StatusFileActionOK, "Requested file action okay, completed.")
}

const listDateFormat = "Jan _2 15:04"

func (c *clientHandler) fileStat(info os.FileInfo) string {
	typ := byte('-')
	perm := "rw-r--r--"

	if info.IsDir() {
		typ = 'd'
		perm = "rwxr-xr-x"
	}

	return fmt.Sprintf(
		"%c%s 1 owner group %13d %s %s",
		typ,
		perm,
		info.Size(),
		info.ModTime().Local().Format(listDateFormat),
		info.Name(),
	)
}

func (c *clientHandler) listTarget(arg string) ([]os.FileInfo, error) {
	abs, err := c.absPath(arg)
	if err != nil {
		return nil, err
	}

	info, err := c.driver.Stat(abs)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []os.FileInfo{info}, nil
	}

	return readDir(c.driver, abs)
}

func (c *clientHandler) handleLIST(arg string) {
	entries, err := c.listTarget(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "No such file or directory.")
		return
	}

	conn, transfer, err := c.openDataConnection("Opening ASCII mode data connection for file list")
	if err != nil {
		return
	}

	var xferErr error

	for _, entry := range entries {
		if c.checkAborted(transfer) {
			break
		}

		if _, werr := fmt.Fprintf(conn, "%s\r\n", c.fileStat(entry)); werr != nil {
			xferErr = werr
			break
		}
	}

	_ = conn.Close()
	c.closeDataConnection(transfer, xferErr)
}

func (c *clientHandler) handleNLST(arg string) {
	entries, err := c.listTarget(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, "No such file or directory.")
		return
	}

	conn, transfer, err := c.openDataConnection("Opening ASCII mode data connection for file list")
	if err != nil {
		return
	}

	var xferErr error

	for _, entry := range entries {
		if c.checkAborted(transfer) {
			break
		}

		if _, werr := fmt.Fprintf(conn, "%s\r\n", entry.Name()); werr != nil {
			xferErr = werr
			break
		}
	}

	_ = conn.Close()
	c.closeDataConnection(transfer, xferErr)
}

func (c *clientHandler) checkAborted(transfer *TransferSession) bool {
	c.user.Lock()
	aborted := transfer.Aborted
	c.user.Unlock()

	return aborted
}

func (c *clientHandler) handleSTAT(arg string) {
	if arg == "" {
		c.writeMessage(StatusFileStatus, "Server status: ok.")
		return
	}

	entries, err := c.listTarget(arg)
	if err != nil {
		c.writeMessage(StatusFileUnavailable, fmt.Sprintf("Could not STAT: %v", err))
		return
	}

	c.writeLine(fmt.Sprintf("%d-Status of %s:", StatusFileStatus, arg))

	for _, entry := range entries {
		c.writeLine(" " + c.fileStat(entry))
	}

	c.writeLine(fmt.Sprintf("%d End of status.", StatusFileStatus))
}
