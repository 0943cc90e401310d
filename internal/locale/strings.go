package locale

var english = map[Key]string{
	TodayHeading:        "Today's Items",
	Description:         "Description",
	Due:                 "Due",
	CompletedOrPushBack: "Completed on / Push back to",
	Category:            "Category",
	NoItemsDue:          "There are no items currently due.",
	Add:                 "add",
	EditSearch:          "edit / search",
	LookAheadBack:       "look ahead / back",
	Snooze:              "snooze",
	MarkCompleted:       "mark completed",
	InitiallyDue:        "Initially due",
	Frequency:           "Frequency",
	Back:                "back",
	Submit:              "submit",
	TrackHistory:        "Track history?",
	Yes:                 "yes",
	No:                  "no",
	DescriptionTaken:    "ERROR: Description matches one already in database",
	NoApostrophes:       "ERROR: Descriptions and Categories cannot have apostrophes",
	InvalidDate:         "ERROR: Date format is invalid. Should be formatted: ",
	InvalidFrequency:    "ERROR: Frequency must be a positive number",
	From:                "From",
	To:                  "to",
	Look:                "Look",
	Ahead:               "ahead",
	StartBeforeEnd:      "Start date needs to be earlier than or equal to end date",
	NoHistInRange:       "No completed items in selected range.",
	NoItemsInRange:      "No items to display in selected range",
	ItemsDueInRange:     "Items due in range selected",
	ItemsDoneInRange:    "Items completed in range selected",
	Remove:              "remove",
	ChangeDate:          "change date",
	CompletedOn:         "Completed on",
	RepeatEvery:         "Repeat every",
	NotDue:              "no due date",
	ChangeDueDate:       "change due date",
	ChangeFreq:          "change frequency",
	ChangeCategory:      "change category",
	RemoveFromUpcoming:  "remove from upcoming",
	PurgeWarn:           "Are you sure you want to remove all item data? (y/n)",
	PurgeItem:           "purge item",
	Success:             "success!",
	PurgeSuccess:        "Item successfully purged from database.",
	DatabaseError:       "Database error!",
	FatalNoAccess:       "Fatal error: cannot access database",
	TrackingFailed:      "Error: Failed to get tracking for item.",
	MarkCompleteFailed:  "Failed to mark item as complete.",
	SnoozeFailed:        "Error: Failed to snooze item.",
	AddFailed:           "Error: Failed to add new item.",
	ChangeCategoryFail:  "Error: Failed to change item category. Please try again before proceeding as the database may be inconsistent.",
	ChangeDueDateFail:   "Error: Failed to change due date.",
	FreqFailed:          "Error: Unable to change frequency.",
	EditHistFailed:      "Error: Unable to change completion date.",
	RemoveHistFailed:    "Error: Unable to remove completion entry.",
	RemoveUpcomingFail:  "Error: Unable to remove from upcoming.",
	PurgeFailed:         "ERROR: Something went wrong when purging the item. The database may be inconsistent.",
	LoadFailed:          "Error: Unable to load items.",
	History:             "History",
	Tasks:               "Tasks",
	Days:                "days",
	Weeks:               "weeks",
	Months:              "months",
	Years:               "years",
	NoRepeat:            "no repeat",
}

var spanish = map[Key]string{
	TodayHeading:        "Cosas para hoy",
	Description:         "Descripción",
	Due:                 "Fecha de vencimiento",
	CompletedOrPushBack: "Completado el / Cambiar fecha de vencimiento",
	Category:            "Categoría",
	NoItemsDue:          "No hay tareas actualmente vencidas.",
	Add:                 "agregar",
	EditSearch:          "editar / buscar",
	LookAheadBack:       "adelante / atrás",
	Snooze:              "cambiar fecha",
	MarkCompleted:       "completar",
	InitiallyDue:        "Inicialmente vence",
	Frequency:           "Frecuencia",
	Back:                "atrás",
	Submit:              "enviar",
	TrackHistory:        "¿Añadir historial?",
	Yes:                 "sí",
	No:                  "no",
	DescriptionTaken:    "ERROR: La descripción coincide con una que ya está en la base de datos.",
	NoApostrophes:       "ERROR: Las descripciones y categorías no pueden tener apóstrofes",
	InvalidDate:         "ERROR: El formato de fecha no es válido. Debe tener un formato así: ",
	InvalidFrequency:    "ERROR: La frecuencia debe ser un número positivo",
	From:                "Desde",
	To:                  "a",
	Look:                "Mirar",
	Ahead:               "adelante",
	StartBeforeEnd:      "La fecha de inicio debe ser anterior o igual a la fecha de finalización",
	NoHistInRange:       "No hay elementos completados en el rango seleccionado",
	NoItemsInRange:      "No hay elementos para mostrar en el rango seleccionado",
	ItemsDueInRange:     "Tareas con vencimiento en el rango seleccionado",
	ItemsDoneInRange:    "Tareas completadas en el rango seleccionado",
	Remove:              "eliminar",
	ChangeDate:          "cambiar la fecha",
	CompletedOn:         "Completado el",
	RepeatEvery:         "Se repite cada",
	NotDue:              "no hay fecha de vencimiento",
	ChangeDueDate:       "cambiar la fecha de vencimiento",
	ChangeFreq:          "cambiar la frecuencia",
	ChangeCategory:      "cambiar la categoría",
	RemoveFromUpcoming:  "eliminar la fecha de vencimiento",
	PurgeWarn:           "¿Estás seguro que quieres eliminar toda la información de la tarea? (s/n)",
	PurgeItem:           "purgar tarea",
	Success:             "¡Éxito!",
	PurgeSuccess:        "Tarea purgada correctamente de la base de datos.",
	DatabaseError:       "¡Error de la base de datos!",
	FatalNoAccess:       "Error fatal: no puede acceder a la base de datos",
	TrackingFailed:      "Error al obtener el seguimiento de la tarea.",
	MarkCompleteFailed:  "Error al marcar la tarea como completada.",
	SnoozeFailed:        "Error: No se pudo cambiar la fecha de vencimiento.",
	AddFailed:           "Error: No se pudo agregar tarea nueva.",
	ChangeCategoryFail:  "Error: No se pudo cambiar la categoría. Por favor, intente otra vez antes de continuar.",
	ChangeDueDateFail:   "Error: No se pudo cambiar la fecha de vencimiento.",
	FreqFailed:          "Error: No se pudo cambiar la frecuencia.",
	EditHistFailed:      "Error: No se pudo cambiar la fecha de terminación.",
	RemoveHistFailed:    "Error: No se pudo remover la fecha de terminación.",
	RemoveUpcomingFail:  "Error: No se pudo remover elemento de la lista de próximos.",
	PurgeFailed:         "ERROR: Al intentar eliminar la tarea ocurrió un error. La base de datos puede estar dañada.",
	LoadFailed:          "Error: No se pudieron cargar las tareas.",
	History:             "Historial",
	Tasks:               "Tareas",
	Days:                "días",
	Weeks:               "semanas",
	Months:              "meses",
	Years:               "años",
	NoRepeat:            "no repetir",
}
