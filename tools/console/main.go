package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/chzyer/readline"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/lostandfound/lostandfound/pkg/stormcodec"
	"github.com/lostandfound/lostandfound/pkg/stormsql"
	"github.com/lostandfound/lostandfound/pkg/structs"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go lostandfound.db "SELECT * FROM items WHERE Status = 'LOST' AND Category = 'Keys' ORDER BY Timestamp DESC LIMIT 10"
// go run tools/console/main.go lostandfound.db "SELECT count(*) FROM events WHERE Status = 'pending'"
// go run tools/console/main.go lostandfound.db

var codec string

func main() {
	c := &cobra.Command{
		Use:   "console DATABASE [QUERY]",
		Short: "SQL console for lostandfound database",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := stormcodec.ByName(codec)
			if err != nil {
				return err
			}

			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], storm.Codec(c))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			if len(args) == 2 {
				return execute(db, args[1])
			}
			return interactive(db)
		},
	}
	c.Flags().StringVar(&codec, "codec", "msgpack", "Storm codec of the database")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func interactive(db *storm.DB) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lostandfound> ",
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return errors.Wrap(err, "could not start prompt")
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit", `\q`:
			return nil
		}

		if err = execute(db, line); err != nil {
			fmt.Println("Error:", err)
		}
	}
}

func execute(db *storm.DB, sql string) error {
	sc, err := stormsql.ParseSelect(sql)
	if err != nil {
		return err
	}

	//
	// Prepare request
	//

	query := db.Select(sc.Matcher)
	if sc.Skip > 0 {
		query.Skip(sc.Skip)
	}
	if sc.Limit > 0 {
		query.Limit(sc.Limit)
	}
	if len(sc.OrderBy) > 0 {
		query.OrderBy(sc.OrderBy...)
		if sc.OrderByReversed {
			query.Reverse()
		}
	}

	// Execute

	if sc.Count {
		return count(sc, query)
	}

	return list(sc, query)
}

func count(sc *stormsql.SelectClause, query storm.Query) error {
	var record any
	switch sc.Tablename {
	case "users":
		record = &model.User{}
	case "items":
		record = &model.Item{}
	case "events":
		record = &model.Event{}
	default:
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	n, err := query.Count(record)
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	fmt.Println("Count:", n)
	return nil
}

func list(sc *stormsql.SelectClause, query storm.Query) error {
	var records any
	switch sc.Tablename {
	case "users":
		records = &[]*model.User{}
	case "items":
		records = &[]*model.Item{}
	case "events":
		records = &[]*model.Event{}
	default:
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	err := query.Find(records)
	if err == storm.ErrNotFound {
		fmt.Println("[]")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	if len(sc.SelectedFields) > 0 {
		if records, err = project(records, sc.SelectedFields); err != nil {
			return err
		}
	}

	dump := litter.Options{
		HidePrivateFields: true,
		HideZeroValues:    true,
	}
	fmt.Println(dump.Sdump(records))
	return nil
}

// project keeps the selected fields of each record.
func project(records any, fields []string) (any, error) {
	var rows []any
	switch v := records.(type) {
	case *[]*model.User:
		for _, r := range *v {
			rows = append(rows, r)
		}
	case *[]*model.Item:
		for _, r := range *v {
			rows = append(rows, r)
		}
	case *[]*model.Event:
		for _, r := range *v {
			rows = append(rows, r)
		}
	}

	projected := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		p, err := structs.Project(r, fields)
		if err != nil {
			return nil, err
		}
		projected = append(projected, p.Map())
	}
	return projected, nil
}
