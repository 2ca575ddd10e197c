package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/contract"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
)

func invalidBody(c *fiber.Ctx) error {
	return respond(c, app.Fail[any](app.StatusBadRequest, "invalid request body"))
}

func badInput(c *fiber.Ctx, err error) error {
	return respond(c, app.BadInput[any](err))
}

func pathID(c *fiber.Ctx) (int64, error) {
	return contract.ParseID("id", c.Params("id"))
}

func deleted(r app.Result[bool]) app.Result[any] {
	return app.Map(r, func(bool) any { return nil })
}

// --- projects ---

func (s *Server) listProjects(c *fiber.Ctx) error {
	r := s.uc.ListProjects(c.UserContext())
	return respond(c, app.Map(r, contract.NewProjectList))
}

func (s *Server) createProject(c *fiber.Ctx) error {
	var req contract.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.Input()
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.CreateProject(c.UserContext(), in)
	return respondCreated(c, app.Map(r, contract.NewProjectResponse))
}

func (s *Server) getProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.GetProject(c.UserContext(), id)
	return respond(c, app.Map(r, contract.NewProjectResponse))
}

func (s *Server) updateProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	var req contract.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.Input()
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.UpdateProject(c.UserContext(), id, in)
	return respond(c, app.Map(r, contract.NewProjectResponse))
}

func (s *Server) deleteProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	return respond(c, deleted(s.uc.DeleteProject(c.UserContext(), id)))
}

func (s *Server) listProjectTasks(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.ListProjectTasks(c.UserContext(), id)
	return respond(c, app.Map(r, contract.NewTaskList))
}

// --- tasks ---

func (s *Server) listTasks(c *fiber.Ctx) error {
	r := s.uc.ListTasks(c.UserContext(), c.QueryBool("active", false))
	return respond(c, app.Map(r, contract.NewTaskList))
}

func (s *Server) createTask(c *fiber.Ctx) error {
	var req contract.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.Input()
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.CreateTask(c.UserContext(), in)
	return respondCreated(c, app.Map(r, contract.NewTaskResponse))
}

func (s *Server) getTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.GetTask(c.UserContext(), id)
	return respond(c, app.Map(r, contract.NewTaskResponse))
}

func (s *Server) updateTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	var req contract.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.Input()
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.UpdateTask(c.UserContext(), id, in)
	return respond(c, app.Map(r, contract.NewTaskResponse))
}

func (s *Server) deleteTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	return respond(c, deleted(s.uc.DeleteTask(c.UserContext(), id)))
}

// --- time entries ---

func (s *Server) entryFilter(c *fiber.Ctx) (repository.EntryFilter, error) {
	var f repository.EntryFilter
	if v := c.Query("from"); v != "" {
		from, err := contract.ParseRequestDate(v)
		if err != nil {
			return f, err
		}
		f.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := contract.ParseRequestDate(v)
		if err != nil {
			return f, err
		}
		f.To = &to
	}
	if v := c.Query("taskId"); v != "" {
		id, err := contract.ParseID("taskId", v)
		if err != nil {
			return f, err
		}
		f.TaskID = id
	}
	if v := c.Query("projectId"); v != "" {
		id, err := contract.ParseID("projectId", v)
		if err != nil {
			return f, err
		}
		f.ProjectID = id
	}
	return f, nil
}

func (s *Server) listEntries(c *fiber.Ctx) error {
	f, err := s.entryFilter(c)
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.ListEntries(c.UserContext(), f)
	return respond(c, app.Map(r, contract.NewTimeEntryList))
}

func (s *Server) createEntry(c *fiber.Ctx) error {
	var req contract.TimeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.Input()
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.CreateEntry(c.UserContext(), in)
	return respondCreated(c, app.Map(r, contract.NewTimeEntryResponse))
}

func (s *Server) getEntry(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.GetEntry(c.UserContext(), id)
	return respond(c, app.Map(r, contract.NewTimeEntryResponse))
}

func (s *Server) updateEntry(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	var req contract.TimeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.Input()
	if err != nil {
		return badInput(c, err)
	}
	r := s.uc.UpdateEntry(c.UserContext(), id, in)
	return respond(c, app.Map(r, contract.NewTimeEntryResponse))
}

func (s *Server) deleteEntry(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badInput(c, err)
	}
	return respond(c, deleted(s.uc.DeleteEntry(c.UserContext(), id)))
}

// dailySummary serves every day with entries, or one day with ?date=, or a
// range with ?from=&to=.
func (s *Server) dailySummary(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if v := c.Query("date"); v != "" {
		day, err := contract.ParseRequestDate(v)
		if err != nil {
			return badInput(c, err)
		}
		r := s.uc.SummaryForDate(ctx, day)
		return respond(c, app.Map(r, func(d domain.DailySummary) []contract.DailySummaryResponse {
			return contract.NewDailySummaryList([]domain.DailySummary{d})
		}))
	}

	f, err := s.entryFilter(c)
	if err != nil {
		return badInput(c, err)
	}
	if f.From != nil || f.To != nil {
		var from, to time.Time
		if f.From != nil {
			from = *f.From
		}
		if f.To != nil {
			to = *f.To
		}
		r := s.uc.DailySummaryBetween(ctx, from, to)
		return respond(c, app.Map(r, contract.NewDailySummaryList))
	}
	return respond(c, app.Map(s.uc.DailySummary(ctx), contract.NewDailySummaryList))
}
