package services

// RejectionReason is one entry of the fixed profile-rejection catalog. The
// canonical message and fix-it instructions are what the client renders; an
// admin comment may be appended to the instructions but never replaces them.
type RejectionReason struct {
	Code            string `json:"code"`
	Message         string `json:"message"`
	FixInstructions string `json:"fixInstructions"`
}

var rejectionReasons = map[string]RejectionReason{
	"no_face_photo": {
		Code:            "no_face_photo",
		Message:         "Your profile was not approved because none of your photos clearly show your face.",
		FixInstructions: "Add at least one well-lit photo where your face is clearly visible, then resubmit your profile.",
	},
	"inappropriate_photos": {
		Code:            "inappropriate_photos",
		Message:         "Your profile was not approved because one or more photos violate our content guidelines.",
		FixInstructions: "Remove any photos containing nudity, violence, or offensive imagery and upload appropriate replacements.",
	},
	"fake_photos": {
		Code:            "fake_photos",
		Message:         "Your profile was not approved because your photos appear to show someone other than you.",
		FixInstructions: "Upload recent photos of yourself. Celebrity images, stock photos, and heavily filtered pictures are not allowed.",
	},
	"incomplete_bio": {
		Code:            "incomplete_bio",
		Message:         "Your profile was not approved because your bio is missing or too short.",
		FixInstructions: "Write a few sentences about yourself, your interests, and what you are looking for.",
	},
	"underage": {
		Code:            "underage",
		Message:         "Your profile was not approved because we could not confirm you meet the minimum age requirement.",
		FixInstructions: "Celestia is only available to users aged 18 and over. If this is a mistake, complete identity verification.",
	},
	"spam": {
		Code:            "spam",
		Message:         "Your profile was not approved because it looks like promotional or automated content.",
		FixInstructions: "Remove advertising, referral links, and repeated text, then resubmit a personal profile.",
	},
	"offensive_content": {
		Code:            "offensive_content",
		Message:         "Your profile was not approved because it contains offensive or hateful content.",
		FixInstructions: "Remove slurs, harassment, and hateful language from your bio and photos before resubmitting.",
	},
	"low_quality_photos": {
		Code:            "low_quality_photos",
		Message:         "Your profile was not approved because your photos are too blurry or dark to review.",
		FixInstructions: "Replace blurry, dark, or heavily cropped images with clear, recent photos.",
	},
	"contact_info_bio": {
		Code:            "contact_info_bio",
		Message:         "Your profile was not approved because your bio contains contact information.",
		FixInstructions: "Remove phone numbers, email addresses, and social media handles from your bio.",
	},
	"multiple_accounts": {
		Code:            "multiple_accounts",
		Message:         "Your profile was not approved because it appears to duplicate an existing account.",
		FixInstructions: "Each person may only hold one Celestia account. Log in to your original account or contact support.",
	},
}

// RejectionReasonFor looks up the canonical reason for a code.
func RejectionReasonFor(code string) (RejectionReason, bool) {
	r, ok := rejectionReasons[code]
	return r, ok
}

// RejectionReasons returns the full catalog for the admin dashboard.
func RejectionReasons() []RejectionReason {
	out := make([]RejectionReason, 0, len(rejectionReasons))
	for _, r := range rejectionReasons {
		out = append(out, r)
	}
	return out
}

// AppendAdminNote appends a free-text admin comment to the canonical fix
// instructions. The canonical text always comes first.
func AppendAdminNote(instructions, note string) string {
	if note == "" {
		return instructions
	}
	return instructions + "\n\nAdditional Note from Admin:\n" + note
}
