package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type LegalHandler struct{}

func NewLegalHandler() *LegalHandler {
	return &LegalHandler{}
}

const legalPageStyle = `body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}`

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - Celestia</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>` + legalPageStyle + `</style>
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: August 2026</p>
<h2>Information We Collect</h2>
<p>We collect your email address, profile details, and photos to provide our matchmaking services. If you sign in with Apple, we receive your Apple ID identifier.</p>
<h2>How We Use Your Information</h2>
<p>Your data is used solely to operate Celestia, authenticate your account, show your profile to other members, and keep the community safe.</p>
<h2>Profile Review</h2>
<p>New profiles and reported profiles are reviewed by our moderation team. Verification photos are used only for identity matching and are not shown to other members.</p>
<h2>Data Storage</h2>
<p>Your data is stored securely on encrypted servers. We do not sell your personal information to third parties.</p>
<h2>Account Deletion</h2>
<p>You can delete your account and all associated data at any time from the app settings.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at support@celestia.app</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - Celestia</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>` + legalPageStyle + `</style>
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: August 2026</p>
<h2>Acceptance</h2>
<p>By using Celestia, you agree to these terms.</p>
<h2>Eligibility</h2>
<p>You must be at least 18 years old to use Celestia. Accounts found to belong to minors are permanently banned.</p>
<h2>User Conduct</h2>
<p>You agree not to post offensive, illegal, or misleading content, and not to share contact information in your bio. We reserve the right to warn, suspend, or ban accounts that violate our community guidelines.</p>
<h2>Moderation and Appeals</h2>
<p>All new profiles are reviewed before becoming visible. If your account is suspended or banned, you may submit one appeal for review by our team.</p>
<h2>Termination</h2>
<p>We may suspend or terminate accounts that violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact us at support@celestia.app</p>
</body></html>`)
}

func (h *LegalHandler) CommunityGuidelines(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Community Guidelines - Celestia</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>` + legalPageStyle + `</style>
</head><body>
<h1>Community Guidelines</h1>
<p>Last updated: August 2026</p>
<h2>Be Yourself</h2>
<p>Use recent photos that clearly show your face. Fake or heavily edited photos will be rejected during review.</p>
<h2>Be Respectful</h2>
<p>Harassment, hate speech, and sexual content are not tolerated and will result in a warning, suspension, or ban.</p>
<h2>No Spam or Scams</h2>
<p>Do not advertise, solicit, or attempt to move conversations off-platform by putting contact details in your bio.</p>
<h2>One Account Per Person</h2>
<p>Duplicate accounts are removed. If you were previously banned, creating a new account violates these guidelines.</p>
<h2>Reporting</h2>
<p>If someone makes you uncomfortable, report them from their profile. Every report is reviewed by a human moderator.</p>
</body></html>`)
}
