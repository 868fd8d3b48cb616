// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package web embeds the two HTML pages and the writing guide.

# Pages

	pages, err := web.Load()
	pages.Index(w, web.IndexData{Date: web.DateLabel(now), Category: "봄"})
	pages.Admin(w, web.AdminData{Categories: models.Categories, ...})

Both pages share templates/base.html. The main page talks to the JSON API
and the live feed socket from inline script; the admin page sends the
password in X-Admin-Password with every call.

# Guide

guide.md is rendered once at Load with goldmark. Raw HTML in the Markdown
is not passed through.
*/
package web
