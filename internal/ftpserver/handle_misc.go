package ftpserver

import (
	"fmt"
	"strings"
)

func (c *clientHandler) handleSYST(_ string) {
	c.writeMessage(StatusSystemType, "UNIX Type: L8")
}

func (c *clientHandler) handleTYPE(arg string) {
	switch strings.ToUpper(strings.TrimSpace(arg)) {
	case "A":
		c.user.Lock()
		c.user.Type = TransferTypeASCII
		c.user.Unlock()

		c.writeMessage(StatusFileActionOK, "Type set to ASCII.")
	case "I":
		c.user.Lock()
		c.user.Type = TransferTypeBinary
		c.user.Unlock()

		c.writeMessage(StatusFileActionOK, "Type set to Binary.")
	default:
		c.writeMessage(StatusCommandNotImplParam, "Command not implemented for that parameter.")
	}
}

func (c *clientHandler) handleSTRU(arg string) {
	if strings.EqualFold(strings.TrimSpace(arg), "F") {
		c.writeMessage(StatusFileActionOK, "Structure set to File.")
		return
	}

	c.writeMessage(StatusCommandNotImplParam, "Command not implemented for that parameter.")
}

func (c *clientHandler) handleMODE(arg string) {
	if strings.EqualFold(strings.TrimSpace(arg), "S") {
		c.writeMessage(StatusFileActionOK, "Mode set to Stream.")
		return
	}

	c.writeMessage(StatusCommandNotImplParam, "Command not implemented for that parameter.")
}

func (c *clientHandler) handleFEAT(_ string) {
	c.writeLine(fmt.Sprintf("%d-Features:", StatusFeatures))
	c.writeLine(" REST STREAM")
	c.writeLine(" MDTM")
	c.writeLine(fmt.Sprintf("%d End", StatusFeatures))
}

func (c *clientHandler) handleSITE(_ string) {
	c.writeMessage(StatusCommandNotImplParam, "SITE command not implemented.")
}

func (c *clientHandler) handleHELP(arg string) {
	if arg == "" {
		c.writeMessage(StatusFileStatus, "Help: USER PASS QUIT PORT PASV TYPE RETR STOR LIST NLST CWD CDUP PWD MKD RMD DELE RNFR RNTO REST MDTM FEAT")
		return
	}

	c.writeMessage(StatusFileStatus, fmt.Sprintf("Syntax: %s is a recognised command.", strings.ToUpper(arg)))
}
