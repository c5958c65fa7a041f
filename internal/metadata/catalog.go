package metadata

// DefaultCatalog declares the nine resources of the volunteering program.
// Every behavioral difference between resources (error codes, empty-update
// policy, ordering, filters) lives here; the engine itself is uniform.
func DefaultCatalog() []*Entity {
	return []*Entity{
		{
			Name:     "students",
			Table:    "students",
			Singular: "Student",
			Fields: []Field{
				{
					Name: "customId", Column: "custom_id", Kind: KindString,
					Required: true, RequiredCode: "MISSING_CUSTOM_ID", RequiredMessage: "Custom ID is required",
					InvalidCode: "INVALID_CUSTOM_ID", InvalidMessage: "Custom ID must be a non-empty string",
					Unique: true, UniqueCode: "DUPLICATE_CUSTOM_ID", UniqueMessage: "Custom ID already exists",
					Immutable: true,
				},
				{
					Name: "name", Column: "name", Kind: KindString,
					Required: true, RequiredCode: "MISSING_NAME", RequiredMessage: "Name is required",
					InvalidCode: "INVALID_NAME", InvalidMessage: "Name must be a non-empty string",
				},
				{
					Name: "department", Column: "department", Kind: KindString,
					Required: true, RequiredCode: "MISSING_DEPARTMENT", RequiredMessage: "Department is required",
					InvalidCode: "INVALID_DEPARTMENT", InvalidMessage: "Department must be a non-empty string",
				},
				{
					Name: "password", Column: "password", Kind: KindString,
					Required: true, RequiredCode: "MISSING_PASSWORD", RequiredMessage: "Password is required",
					InvalidCode: "INVALID_PASSWORD", InvalidMessage: "Password must be a non-empty string",
				},
				{
					Name: "profileImageUrl", Column: "profile_image_url", Kind: KindNullableString,
					InvalidCode: "INVALID_PROFILE_IMAGE_URL", InvalidMessage: "Profile image URL must be a string or null",
				},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
			},
			SearchFields:      []string{"name", "department"},
			NotFoundCode:      "STUDENT_NOT_FOUND",
			NotFoundMessage:   "Student not found",
			DeleteEnvelopeKey: "student",
		},
		{
			Name:     "coordinators",
			Table:    "coordinators",
			Singular: "Coordinator",
			Fields: []Field{
				{
					Name: "customId", Column: "custom_id", Kind: KindString,
					Required: true, RequiredCode: "MISSING_CUSTOM_ID", RequiredMessage: "customId is required and must be a non-empty string",
					InvalidCode: "INVALID_CUSTOM_ID", InvalidMessage: "customId must be a non-empty string",
					Unique: true, UniqueCode: "DUPLICATE_CUSTOM_ID", UniqueMessage: "customId already exists",
					Immutable: true,
				},
				{
					Name: "name", Column: "name", Kind: KindString,
					Required: true, RequiredCode: "MISSING_NAME", RequiredMessage: "name is required and must be a non-empty string",
					InvalidCode: "INVALID_NAME", InvalidMessage: "name must be a non-empty string",
				},
				{
					Name: "department", Column: "department", Kind: KindString,
					Required: true, RequiredCode: "MISSING_DEPARTMENT", RequiredMessage: "department is required and must be a non-empty string",
					InvalidCode: "INVALID_DEPARTMENT", InvalidMessage: "department must be a non-empty string",
				},
				{
					Name: "password", Column: "password", Kind: KindString,
					Required: true, RequiredCode: "MISSING_PASSWORD", RequiredMessage: "password is required and must be a non-empty string",
					InvalidCode: "INVALID_PASSWORD", InvalidMessage: "password must be a non-empty string",
				},
				{
					Name: "isActive", Column: "is_active", Kind: KindBool, Default: true,
					InvalidCode: "INVALID_IS_ACTIVE", InvalidMessage: "isActive must be a boolean",
				},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
			},
			SearchFields:      []string{"name", "department"},
			BoolFilters:       []string{"isActive"},
			OrderNewestFirst:  true,
			NotFoundMessage:   "Coordinator not found",
			DeleteEnvelopeKey: "coordinator",
			Rules: []Rule{
				{
					Name: "customId format", On: "create",
					Expr:    `record.customId matches "^COORD[0-9]+$"`,
					Code:    "INVALID_CUSTOM_ID_FORMAT",
					Message: "customId must follow format COORD#### (e.g., COORD1001)",
				},
			},
		},
		{
			Name:     "departments",
			Table:    "departments",
			Singular: "Department",
			Fields: []Field{
				{
					Name: "name", Column: "name", Kind: KindString,
					Required: true, RequiredCode: "MISSING_NAME", RequiredMessage: "Name is required",
					InvalidCode: "INVALID_NAME", InvalidMessage: "Name must be a non-empty string",
					Unique: true, UniqueCode: "DUPLICATE_NAME", UniqueMessage: "Department with this name already exists",
				},
				{
					Name: "isActive", Column: "is_active", Kind: KindBool, Default: true,
					InvalidCode: "INVALID_IS_ACTIVE", InvalidMessage: "isActive must be a boolean",
				},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
			},
			SearchFields:      []string{"name"},
			BoolFilters:       []string{"isActive"},
			NotFoundCode:      "DEPARTMENT_NOT_FOUND",
			NotFoundMessage:   "Department not found",
			DeleteEnvelopeKey: "department",
		},
		{
			Name:     "programs",
			Table:    "programs",
			Singular: "Program",
			Fields: []Field{
				{
					Name: "title", Column: "title", Kind: KindString,
					Required: true, RequiredCode: "MISSING_TITLE", RequiredMessage: "Title is required",
					InvalidCode: "INVALID_TITLE", InvalidMessage: "Title must be a non-empty string",
				},
				{
					Name: "description", Column: "description", Kind: KindString,
					Required: true, RequiredCode: "MISSING_DESCRIPTION", RequiredMessage: "Description is required",
					InvalidCode: "INVALID_DESCRIPTION", InvalidMessage: "Description must be a non-empty string",
				},
				{
					Name: "date", Column: "date", Kind: KindString,
					Required: true, RequiredCode: "MISSING_DATE", RequiredMessage: "Date is required",
					InvalidCode: "INVALID_DATE", InvalidMessage: "Date must be a non-empty string",
				},
				{
					Name: "time", Column: "time", Kind: KindString,
					Required: true, RequiredCode: "MISSING_TIME", RequiredMessage: "Time is required",
					InvalidCode: "INVALID_TIME", InvalidMessage: "Time must be a non-empty string",
				},
				{
					Name: "venue", Column: "venue", Kind: KindString,
					Required: true, RequiredCode: "MISSING_VENUE", RequiredMessage: "Venue is required",
					InvalidCode: "INVALID_VENUE", InvalidMessage: "Venue must be a non-empty string",
				},
				// Member ids are not validated against coordinators/students;
				// callers depend on free-form lists.
				{Name: "coordinatorIds", Column: "coordinator_ids", Kind: KindIDList},
				{Name: "participantIds", Column: "participant_ids", Kind: KindIDList},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
				{Name: "updatedAt", Column: "updated_at", Kind: KindString, Auto: "update"},
			},
			SearchFields:      []string{"title"},
			NotFoundMessage:   "Program not found",
			DeleteEnvelopeKey: "program",
		},
		{
			Name:     "student-activities",
			Table:    "student_activities",
			Singular: "Student activity",
			Fields: []Field{
				{
					Name: "studentCustomId", Column: "student_custom_id", Kind: KindString,
					Required: true, RequiredCode: "MISSING_STUDENT_CUSTOM_ID", RequiredMessage: "studentCustomId is required",
					InvalidCode: "INVALID_STUDENT_CUSTOM_ID", InvalidMessage: "studentCustomId must be a non-empty string",
				},
				{
					Name: "badge", Column: "badge", Kind: KindEnum, Enum: []string{"green", "yellow"},
					Required: true, RequiredCode: "MISSING_BADGE", RequiredMessage: "badge is required",
					InvalidCode: "INVALID_BADGE", InvalidMessage: `badge must be either "green" or "yellow"`,
				},
				{
					Name: "title", Column: "title", Kind: KindString,
					Required: true, RequiredCode: "MISSING_TITLE", RequiredMessage: "title is required",
					InvalidCode: "INVALID_TITLE", InvalidMessage: "title must be a non-empty string",
				},
				{
					Name: "content", Column: "content", Kind: KindString,
					Required: true, RequiredCode: "MISSING_CONTENT", RequiredMessage: "content is required",
					InvalidCode: "INVALID_CONTENT", InvalidMessage: "content must be a non-empty string",
				},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
			},
			Scope: &ScopeFilter{
				Param: "studentId", Field: "studentCustomId",
			},
			NotFoundMessage:   "Student activity not found",
			RejectEmptyUpdate: true,
			DeleteEnvelopeKey: "deletedActivity",
		},
		{
			Name:     "story-batches",
			Table:    "story_batches",
			Singular: "Story batch",
			Fields: []Field{
				{
					Name: "name", Column: "name", Kind: KindString,
					Required: true, RequiredCode: "MISSING_REQUIRED_FIELD", RequiredMessage: "Name is required",
					InvalidCode: "INVALID_NAME", InvalidMessage: "Name cannot be empty",
				},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
			},
			OrderNewestFirst:  true,
			NotFoundCode:      "BATCH_NOT_FOUND",
			NotFoundMessage:   "Story batch not found",
			RejectEmptyUpdate: true,
			DeleteEnvelopeKey: "batch",
		},
		{
			Name:     "story-albums",
			Table:    "story_albums",
			Singular: "Story album",
			Fields: []Field{
				{
					Name: "batchId", Column: "batch_id", Kind: KindIntRef,
					Required: true, RequiredCode: "MISSING_BATCH_ID", RequiredMessage: "Batch ID is required",
					InvalidCode: "INVALID_BATCH_ID", InvalidMessage: "Batch ID must be a valid integer",
					Ref: &ForeignKey{
						Entity:          "story-batches",
						NotFoundCode:    "BATCH_NOT_FOUND",
						NotFoundMessage: "Story batch not found",
					},
				},
				{
					Name: "name", Column: "name", Kind: KindString,
					Required: true, RequiredCode: "MISSING_NAME", RequiredMessage: "Name is required and must be a non-empty string",
					InvalidCode: "INVALID_NAME", InvalidMessage: "Name must be a non-empty string",
				},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
			},
			Scope: &ScopeFilter{
				Param: "batchId", Field: "batchId", Numeric: true,
				InvalidCode: "INVALID_BATCH_ID", InvalidMsg: "Invalid batch ID",
			},
			NotFoundMessage:   "Story album not found",
			RejectEmptyUpdate: true,
			DeleteEnvelopeKey: "deletedAlbum",
		},
		{
			Name:     "story-media",
			Table:    "story_media",
			Singular: "Story media",
			Fields: []Field{
				{
					Name: "albumId", Column: "album_id", Kind: KindIntRef,
					Required: true, RequiredCode: "MISSING_ALBUM_ID", RequiredMessage: "albumId is required",
					InvalidCode: "INVALID_ALBUM_ID", InvalidMessage: "albumId must be a valid integer",
					Ref: &ForeignKey{
						Entity:          "story-albums",
						NotFoundCode:    "ALBUM_NOT_FOUND",
						NotFoundMessage: "Album not found",
					},
				},
				{
					Name: "type", Column: "type", Kind: KindEnum, Enum: []string{"image", "video"},
					Required: true, RequiredCode: "MISSING_TYPE", RequiredMessage: "type is required",
					InvalidCode: "INVALID_TYPE", InvalidMessage: `type must be either "image" or "video"`,
				},
				{
					Name: "url", Column: "url", Kind: KindString,
					Required: true, RequiredCode: "MISSING_URL", RequiredMessage: "url is required",
					InvalidCode: "INVALID_URL", InvalidMessage: "url must be a non-empty string",
				},
				{
					Name: "title", Column: "title", Kind: KindNullableString,
					InvalidCode: "INVALID_TITLE", InvalidMessage: "title must be a string or null",
				},
				{
					Name: "isFeatured", Column: "is_featured", Kind: KindBool, Default: false,
					InvalidCode: "INVALID_IS_FEATURED", InvalidMessage: "isFeatured must be a boolean",
				},
				{Name: "createdAt", Column: "created_at", Kind: KindString, Auto: "create"},
				{Name: "updatedAt", Column: "updated_at", Kind: KindString, Auto: "update"},
			},
			Scope: &ScopeFilter{
				Param: "albumId", Field: "albumId", Numeric: true,
				InvalidCode: "INVALID_ALBUM_ID", InvalidMsg: "Invalid albumId parameter",
			},
			BoolFilters:       []string{"isFeatured"},
			NotFoundMessage:   "Story media not found",
			DeleteEnvelopeKey: "data",
		},
	}
}
