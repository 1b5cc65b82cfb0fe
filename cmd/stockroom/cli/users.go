package cli

import (
	"fmt"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/users"
)

func userCommands() map[string]command {
	return map[string]command{
		"users list": {usage: "", run: runUsersList},
		"users add":  {usage: "-username S -password S [-role ADMIN|STAFF]", run: runUsersAdd},
	}
}

func runUsersList(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	tw := newTable(e.stdout, "USERNAME", "ROLE")
	for _, u := range e.services.Users.ListUsers() {
		fmt.Fprintf(tw, "%s\t%s\n", u.Username, u.Role)
	}
	return tw.Flush()
}

func runUsersAdd(e *env, args []string) error {
	fs := newFlags(e, "users add")
	var input users.RegisterInput
	var role string
	fs.StringVar(&input.Username, "username", "", "login name")
	fs.StringVar(&input.Password, "password", "", "initial password")
	fs.StringVar(&role, "role", string(auth.RoleStaff), "ADMIN or STAFF")
	if err := parse(fs, args); err != nil {
		return err
	}
	input.Role = auth.Role(role)
	user, err := e.services.Users.Register(e.ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "User %s added as %s.\n", user.Username, user.Role)
	return nil
}
