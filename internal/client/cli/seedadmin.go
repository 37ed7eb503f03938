package cli

import (
	"context"
	"fmt"

	clientapi "github.com/maktab-uz/maktab/internal/client/api"
	"github.com/maktab-uz/maktab/pkg/api"
)

// RunSeedAdmin создает первого администратора через общий секрет
// и сразу сохраняет полученную сессию
func (c *Cli) RunSeedAdmin(ctx context.Context, apiClient *clientapi.Client) error {
	secret, err := readPassword("Admin seed secret: ")
	if err != nil {
		return err
	}

	username, err := readLine("Admin username: ")
	if err != nil {
		return err
	}

	password, err := readPassword("Admin password: ")
	if err != nil {
		return err
	}

	firstName, err := readLine("First name: ")
	if err != nil {
		return err
	}

	lastName, err := readLine("Last name: ")
	if err != nil {
		return err
	}

	resp, err := apiClient.SeedAdmin(ctx, secret, api.SeedAdminRequest{
		Username:  username,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	if _, err := c.authService.ApplyLogin(ctx, resp); err != nil {
		return err
	}

	fmt.Printf("Admin %s created and signed in.\n", resp.User.Username)
	return nil
}
