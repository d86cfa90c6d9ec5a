package memory

import (
	reminderRepo "taskly/database/repository/reminder"
	taskRepo "taskly/database/repository/task"
	userRepo "taskly/database/repository/user"
)

var (
	_ taskRepo.TaskRepository         = (*TaskStore)(nil)
	_ reminderRepo.ReminderRepository = (*ReminderStore)(nil)
	_ userRepo.UserRepository         = (*UserStore)(nil)
)
