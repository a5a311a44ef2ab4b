package ftpserver

// Reply codes, named after their RFC 959 meaning the way the teacher names
// its Status* constants. Only a small subset is declared; 500 and 502 are
// declared but not currently emitted (unknown verbs are mapped to NOOP).
const (
	StatusFileStatus           = 213 // MDTM
	StatusFeatures             = 211 // FEAT
	StatusSystemType           = 215 // SYST
	StatusServiceReady         = 220 // greeting
	StatusClosingControlConn   = 221 // QUIT
	StatusDataConnOpening      = 150 // data channel opening (150)
	StatusClosingDataConn      = 226 // transfer complete / ABOR processed
	StatusEnteringPASV         = 227
	StatusUserLoggedIn         = 230
	StatusFileActionOK         = 250 // CWD/CDUP/RMD/DELE/RNTO ok
	StatusPathCreatedOrPWD     = 257 // MKD created / PWD
	StatusUserOK               = 331 // USER ok, need password
	StatusFileActionPending    = 350 // RNFR / REST
	StatusCannotOpenDataConn   = 425
	StatusConnClosedTransfer   = 426
	StatusNotLoggedIn          = 530
	StatusFileUnavailable      = 550 // permission denied / not found / generic failure
	StatusFileNameNotAllowed   = 553 // not found: RETR of a missing file
	StatusSyntaxErrorCommand   = 500
	StatusSyntaxErrorParams    = 501
	StatusCommandNotImplParam  = 504
	StatusBadSequenceOfCmds    = 503
	StatusCommandNotRecognised = 502
)
