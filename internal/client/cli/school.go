package cli

import (
	"context"
	"flag"
	"fmt"

	clientapi "github.com/maktab-uz/maktab/internal/client/api"
	"github.com/maktab-uz/maktab/pkg/api"
)

// RunClasses обрабатывает подкоманды classes: list | add | delete
func (c *Cli) RunClasses(ctx context.Context, apiClient *clientapi.Client, args []string) error {
	token, err := c.authService.Session().Token()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		classes, err := apiClient.ListClasses(ctx, token)
		if err != nil {
			return err
		}
		if len(classes) == 0 {
			fmt.Println("No classes.")
			return nil
		}
		for _, class := range classes {
			teacher := "-"
			if class.TeacherID != nil {
				teacher = *class.TeacherID
			}
			fmt.Printf("%s  %d%-4s teacher=%s\n", class.ID, class.Grade, class.Name, teacher)
		}
		return nil

	case "add":
		fs := flag.NewFlagSet("classes add", flag.ContinueOnError)
		grade := fs.Int("grade", 0, "Grade (1-11)")
		name := fs.String("name", "", "Class name/section")
		teacherID := fs.String("teacher", "", "Homeroom teacher user ID")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *grade == 0 {
			return fmt.Errorf("usage: maktab classes add -grade <n> [-name <name>] [-teacher <id>]")
		}

		req := api.CreateClassRequest{Grade: *grade, Name: *name}
		if *teacherID != "" {
			req.TeacherID = teacherID
		}

		class, err := apiClient.CreateClass(ctx, token, req)
		if err != nil {
			return err
		}
		fmt.Printf("Created class %d%s, id %s.\n", class.Grade, class.Name, class.ID)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: maktab classes delete <class-id>")
		}
		if err := apiClient.DeleteClass(ctx, token, args[1]); err != nil {
			return err
		}
		fmt.Println("Class deleted.")
		return nil

	default:
		return fmt.Errorf("unknown classes subcommand %q", args[0])
	}
}

// RunSubjects обрабатывает подкоманды subjects: list | add | update | delete
func (c *Cli) RunSubjects(ctx context.Context, apiClient *clientapi.Client, args []string) error {
	token, err := c.authService.Session().Token()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		subjects, err := apiClient.ListSubjects(ctx, token)
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			fmt.Println("No subjects.")
			return nil
		}
		for _, subject := range subjects {
			fmt.Printf("%s  %s / %s\n", subject.ID, subject.NameRu, subject.NameUz)
		}
		return nil

	case "add", "update":
		fs := flag.NewFlagSet("subjects "+args[0], flag.ContinueOnError)
		nameRu := fs.String("ru", "", "Subject name in Russian")
		nameUz := fs.String("uz", "", "Subject name in Uzbek")
		id := fs.String("id", "", "Subject ID (update only)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *nameRu == "" || *nameUz == "" {
			return fmt.Errorf("both -ru and -uz names are required")
		}

		req := api.SubjectRequest{NameRu: *nameRu, NameUz: *nameUz}

		if args[0] == "add" {
			subject, err := apiClient.CreateSubject(ctx, token, req)
			if err != nil {
				return err
			}
			fmt.Printf("Created subject %s, id %s.\n", subject.NameRu, subject.ID)
			return nil
		}

		if *id == "" {
			return fmt.Errorf("usage: maktab subjects update -id <id> -ru <name> -uz <name>")
		}
		subject, err := apiClient.UpdateSubject(ctx, token, *id, req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated subject %s.\n", subject.ID)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: maktab subjects delete <subject-id>")
		}
		if err := apiClient.DeleteSubject(ctx, token, args[1]); err != nil {
			return err
		}
		fmt.Println("Subject deleted.")
		return nil

	default:
		return fmt.Errorf("unknown subjects subcommand %q", args[0])
	}
}
