package ftpserver

// Authentication accepts any username and any password: full
// authentication is explicitly out of scope.

func (c *clientHandler) handleUSER(arg string) {
	c.user.Lock()
	c.user.Username = arg
	c.user.Status = UserStatusLogging
	c.user.Unlock()

	c.writeMessage(StatusUserOK, "User name okay, need password.")
}

func (c *clientHandler) handlePASS(_ string) {
	c.user.Lock()
	wasLogging := c.user.Status == UserStatusLogging
	if wasLogging {
		c.user.Status = UserStatusActive
	}
	c.user.Unlock()

	if !wasLogging {
		c.writeMessage(StatusBadSequenceOfCmds, "Login with USER first.")
		return
	}

	c.writeMessage(StatusUserLoggedIn, "User logged in, proceed.")
}

func (c *clientHandler) handleACCT(_ string) {
	c.writeMessage(StatusFileActionOK, "ACCT ok.")
}

func (c *clientHandler) handleREIN(_ string) {
	c.user.Lock()
	c.user.SetTransfer(nil)
	c.user.Username = ""
	c.user.Status = UserStatusInactive
	c.user.WorkingDir = "/"
	c.user.Unlock()

	c.writeMessage(StatusServiceReady, c.server.settings.Banner)
}

func (c *clientHandler) handleQUIT(_ string) {
	c.writeMessage(StatusClosingControlConn, "Goodbye.")
}

func (c *clientHandler) handleNOOP(_ string) {
	c.writeMessage(StatusFileActionOK, "NOOP ok.")
}
