package command

import (
	"errors"
	"fmt"
)

const (
	// UnKnownCommandStr is the command not find
	UnKnownCommandStr = "unknown command '%s'"
	// WrongArgs is for wrong number of arguments error
	WrongArgs = "ERR wrong number of arguments for '%s' command"
)

var (
	// OK is the simple string "OK" return to client
	OK = "OK"

	// Pong is the default reply of PING
	Pong = "PONG"

	// ErrSyntax syntax error
	ErrSyntax = errors.New("ERR syntax error")

	// ErrUnknownSubcommand is returned for a subcommand the command does not have
	ErrUnknownSubcommand = errors.New("ERR Unknown subcommand or wrong number of arguments.")
)

//ErrUnKnownCommand return error of the cmd
func ErrUnKnownCommand(cmd string) error {
	return fmt.Errorf(UnKnownCommandStr, cmd)
}

// ErrWrongArgs return error of the cmd
func ErrWrongArgs(cmd string) error {
	return fmt.Errorf(WrongArgs, cmd)
}
