package command

var commands map[string]*Desc

func init() {
	commands = map[string]*Desc{
		// connections
		"echo": {Proc: Echo, Cons: Constraint{2, flags("F")}},
		"ping": {Proc: Ping, Cons: Constraint{-1, flags("tF")}},
		"quit": {Proc: Quit, Cons: Constraint{1, 0}},

		// server
		"command": {Proc: RedisCommand, Cons: Constraint{-1, flags("lt")}},
	}
}
