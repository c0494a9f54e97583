// Command setup-media creates the media-host folder structure the site
// expects. Run it once when provisioning a new Cloudinary account.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/joho/godotenv"
)

var folders = []string{
	"cabana/assets",      // fixed assets (tents, items)
	"cabana/galeria",     // carousel photos
	"cabana/depoimentos", // customer uploads
}

func main() {
	fmt.Println("☁️  Organizing Cloudinary folders...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		fmt.Printf("❌ Failed to initialize Cloudinary: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, folder := range folders {
		result, err := cld.Admin.CreateFolder(ctx, admin.CreateFolderParams{Folder: folder})
		switch {
		case err != nil:
			fmt.Printf("❌ Error creating /%s: %v\n", folder, err)
		case result.Success:
			fmt.Printf("✅ Folder created: /%s\n", folder)
		default:
			fmt.Printf("ℹ️  Folder already exists: /%s\n", folder)
		}
	}

	fmt.Println("\n⚠️  NEXT STEP: move your images:")
	fmt.Println("   - simulator assets -> cabana/assets")
	fmt.Println("   - site photos -> cabana/galeria")
}
